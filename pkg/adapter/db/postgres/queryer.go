package postgres

import (
	"context"

	"github.com/dwarthen/coffeeshops/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the constraint of generic repository functions which run
// their queries on a connection, using raw SQL or GORM.
type Queryer interface {
	*Conn
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}
