package repo

import "context"

// ConnHandler is a function which receives a connection from a Pool
// and runs its statements on it. The connection is released as soon
// as the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connections pool.
type Pool interface {
	// Conn acquires a connection and passes it to the handler.
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all pooled connections.
	Close() error
}
