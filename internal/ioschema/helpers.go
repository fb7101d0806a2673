package ioschema

import (
	"fmt"

	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/jackc/pgx/v5"
)

const constraintExistsSQL = `SELECT EXISTS (
	SELECT 1 FROM pg_constraint WHERE conname = $1
)`

// constraintName follows the fk_<table>_<column> pattern.
func constraintName(ref schema.Reference) string {
	return fmt.Sprintf("fk_%s_%s", ref.Table, ref.Column)
}

// formatConstraintSQL builds ALTER TABLE statement for a foreign key.
// Deleting a referenced row keeps the referencing one with a NULL.
func formatConstraintSQL(ref schema.Reference) string {
	return fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) "+
			"REFERENCES %s (%s) ON DELETE SET NULL",
		pgx.Identifier{ref.Table}.Sanitize(),
		pgx.Identifier{constraintName(ref)}.Sanitize(),
		pgx.Identifier{ref.Column}.Sanitize(),
		pgx.Identifier{ref.RefTable}.Sanitize(),
		pgx.Identifier{ref.RefColumn}.Sanitize(),
	)
}
