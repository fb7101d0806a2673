package lifecycle

import "context"

// Populator imports bike-share data from an external source.
type Populator interface {
	// Populate copies all rows of the source into the database and
	// returns the number of imported rows per table.
	Populate(ctx context.Context) (map[string]int64, error)
}
