package data

import "errors"

var (
	ErrDataAccess       = errors.New("data access")
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrDegenerateColumn = errors.New("degenerate column")
)
