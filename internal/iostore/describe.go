package iostore

import (
	"context"
	"database/sql"

	"github.com/bikeq/bikeq/pkg/schema"
)

const describeQuery = `
SELECT
	t.table_name,
	c.column_name,
	c.data_type,
	c.is_nullable,
	c.column_default,
	c.character_maximum_length,
	c.numeric_precision,
	c.numeric_scale,
	CASE
		WHEN pk.column_name IS NOT NULL THEN 'PRIMARY KEY'
		WHEN fk.column_name IS NOT NULL THEN 'FOREIGN KEY'
		ELSE 'REGULAR'
	END AS key_type,
	fk.foreign_table_name,
	fk.foreign_column_name
FROM information_schema.tables t
LEFT JOIN information_schema.columns c ON t.table_name = c.table_name
LEFT JOIN (
	SELECT kcu.column_name, kcu.table_name
	FROM information_schema.table_constraints tc
	JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name
	WHERE tc.constraint_type = 'PRIMARY KEY'
) pk ON c.column_name = pk.column_name AND c.table_name = pk.table_name
LEFT JOIN (
	SELECT
		kcu.column_name,
		kcu.table_name,
		ccu.table_name AS foreign_table_name,
		ccu.column_name AS foreign_column_name
	FROM information_schema.table_constraints AS tc
	JOIN information_schema.key_column_usage AS kcu
		ON tc.constraint_name = kcu.constraint_name
	JOIN information_schema.constraint_column_usage AS ccu
		ON ccu.constraint_name = tc.constraint_name
	WHERE tc.constraint_type = 'FOREIGN KEY'
) fk ON c.column_name = fk.column_name AND c.table_name = fk.table_name
WHERE t.table_schema = 'public'
AND t.table_type = 'BASE TABLE'
ORDER BY t.table_name, c.ordinal_position`

type describeRow struct {
	table     string
	column    sql.NullString
	dataType  sql.NullString
	nullable  sql.NullString
	def       sql.NullString
	maxLength sql.NullInt64
	precision sql.NullInt64
	scale     sql.NullInt64
	keyType   string
	refTable  sql.NullString
	refColumn sql.NullString
}

// Describe returns the schema of the allowed tables. The first
// successful result is cached for the lifetime of the store.
func (s *PgStore) Describe(ctx context.Context) (schema.Description, error) {
	if d := s.desc.Load(); d != nil {
		return *d, nil
	}

	res, err := describe(ctx, s.db)
	if err != nil {
		return res, err
	}
	// concurrent first calls build identical results, any of them may win
	s.desc.Store(&res)
	return res, nil
}

// Reset drops the cached description.
func (s *PgStore) Reset() {
	s.desc.Store(nil)
}

func describe(ctx context.Context, db *sql.DB) (schema.Description, error) {
	var res schema.Description
	rows, err := db.QueryContext(ctx, describeQuery)
	if err != nil {
		return res, SchemaIntrospectionError(err)
	}
	defer rows.Close()

	idx := make(map[string]int)
	for rows.Next() {
		var r describeRow
		err = rows.Scan(
			&r.table, &r.column, &r.dataType, &r.nullable, &r.def,
			&r.maxLength, &r.precision, &r.scale, &r.keyType,
			&r.refTable, &r.refColumn,
		)
		if err != nil {
			return res, SchemaIntrospectionError(err)
		}
		if !schema.IsAllowedTable(r.table) {
			continue
		}

		i, ok := idx[r.table]
		if !ok {
			i = len(res.Tables)
			idx[r.table] = i
			res.Tables = append(res.Tables, schema.Table{Name: r.table})
		}
		if !r.column.Valid {
			continue
		}
		addColumn(&res.Tables[i], r)
	}
	if err = rows.Err(); err != nil {
		return res, SchemaIntrospectionError(err)
	}
	return res, nil
}

func addColumn(t *schema.Table, r describeRow) {
	col := schema.Column{
		Name:      r.column.String,
		DataType:  r.dataType.String,
		Nullable:  r.nullable.String == "YES",
		Default:   nullString(r.def),
		MaxLength: nullInt(r.maxLength),
		Precision: nullInt(r.precision),
		Scale:     nullInt(r.scale),
		KeyRole:   schema.ParseKeyRole(r.keyType),
	}
	t.Columns = append(t.Columns, col)

	switch col.KeyRole {
	case schema.Primary:
		t.PrimaryKeys = append(t.PrimaryKeys, col.Name)
	case schema.Foreign:
		t.ForeignKeys = append(t.ForeignKeys, schema.ForeignKey{
			Column:           col.Name,
			ReferencesTable:  r.refTable.String,
			ReferencesColumn: r.refColumn.String,
		})
	}
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullInt(i sql.NullInt64) *int64 {
	if !i.Valid {
		return nil
	}
	return &i.Int64
}
