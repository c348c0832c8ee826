package seedrp

import (
	"context"
	"fmt"

	"github.com/dwarthen/coffeeshops/pkg/adapter/db/postgres"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableName is the name of the table which keeps the seed records.
const TableName = "coffee_shops"

type gShop struct {
	ID         int `gorm:"primaryKey;autoIncrement:false;column:id"`
	Name       string
	Address    string
	Coordinate model.Coordinate `gorm:"embedded"`
}

func (gs *gShop) TableName() string {
	return TableName
}

func (gs *gShop) Model() model.CoffeeShop {
	return model.CoffeeShop{
		ID:         gs.ID,
		Name:       gs.Name,
		Address:    gs.Address,
		Coordinate: gs.Coordinate,
	}
}

// LoadAll fetches all coffee shops from the TableName table, ordered
// by their IDs.
func LoadAll[Q postgres.Queryer](ctx context.Context, q Q) ([]model.CoffeeShop, error) {
	var gs []gShop
	if err := q.GORM(ctx).Order("id").Find(&gs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	shops := make([]model.CoffeeShop, 0, len(gs))
	for i := range gs {
		shops = append(shops, gs[i].Model())
	}
	return shops, nil
}

// SaveAll creates the TableName table (if it is missing) and writes
// all shops into it in one transaction. Existing rows with the same
// IDs are overwritten, so importing a seed file twice is harmless.
func SaveAll[Q postgres.Queryer](
	ctx context.Context, q Q, shops []model.CoffeeShop,
) error {
	return q.GORM(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&gShop{}); err != nil {
			return fmt.Errorf("creating %s table: %w", TableName, err)
		}
		if len(shops) == 0 {
			return nil
		}
		gs := make([]gShop, 0, len(shops))
		for _, s := range shops {
			gs = append(gs, gShop{
				ID:         s.ID,
				Name:       s.Name,
				Address:    s.Address,
				Coordinate: s.Coordinate,
			})
		}
		err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&gs).Error
		if err != nil {
			return fmt.Errorf("inserting: %w", err)
		}
		return nil
	})
}
