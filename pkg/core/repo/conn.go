package repo

// Conn represents one database connection which can be used to run
// statements sequentially.
type Conn interface {
	Queryer

	// IsConn method prevents a non-Conn object to mistakenly
	// implement the Conn interface.
	IsConn()
}
