package schema

import (
	"fmt"
	"strings"
)

// KeyRole tells if a column is a part of a primary or foreign key.
type KeyRole int

const (
	Regular KeyRole = iota
	Primary
	Foreign
)

// String returns the role the way information_schema queries name it.
func (k KeyRole) String() string {
	switch k {
	case Primary:
		return "PRIMARY KEY"
	case Foreign:
		return "FOREIGN KEY"
	default:
		return "REGULAR"
	}
}

// ParseKeyRole converts "PRIMARY KEY", "FOREIGN KEY" or anything else
// to a KeyRole.
func ParseKeyRole(s string) KeyRole {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PRIMARY KEY":
		return Primary
	case "FOREIGN KEY":
		return Foreign
	default:
		return Regular
	}
}

// Column describes one column of a live table.
type Column struct {
	Name      string  `json:"name"       yaml:"name"`
	DataType  string  `json:"type"       yaml:"type"`
	Nullable  bool    `json:"nullable"   yaml:"nullable"`
	Default   *string `json:"default"    yaml:"default,omitempty"`
	MaxLength *int64  `json:"max_length" yaml:"max_length,omitempty"`
	Precision *int64  `json:"precision"  yaml:"precision,omitempty"`
	Scale     *int64  `json:"scale"      yaml:"scale,omitempty"`
	KeyRole   KeyRole `json:"-"          yaml:"-"`
}

// ForeignKey is a column pointing to a column of another table.
type ForeignKey struct {
	Column           string `json:"column"            yaml:"column"`
	ReferencesTable  string `json:"references_table"  yaml:"references_table"`
	ReferencesColumn string `json:"references_column" yaml:"references_column"`
}

// Table describes a live table with its keys.
type Table struct {
	Name        string       `json:"name"         yaml:"name"`
	Columns     []Column     `json:"columns"      yaml:"columns"`
	PrimaryKeys []string     `json:"primary_keys" yaml:"primary_keys"`
	ForeignKeys []ForeignKey `json:"foreign_keys" yaml:"foreign_keys"`
}

// Description is the introspected schema, tables ordered by name.
// It is built once per process and never modified afterwards.
type Description struct {
	Tables []Table `json:"tables" yaml:"tables"`
}

// Table returns the table with the given name.
func (d Description) Table(name string) (Table, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// HasTable checks if the description contains the table.
func (d Description) HasTable(name string) bool {
	_, ok := d.Table(name)
	return ok
}

// HasColumn checks if the table exists and contains the column.
func (d Description) HasColumn(table, column string) bool {
	t, ok := d.Table(table)
	if !ok {
		return false
	}
	for _, c := range t.Columns {
		if c.Name == column {
			return true
		}
	}
	return false
}

// IsEmpty is true when nothing was introspected.
func (d Description) IsEmpty() bool {
	return len(d.Tables) == 0
}

// Render formats the description as plain text for a language model:
//
//	Table: trips
//	Columns:
//	  - trip_id (integer) NOT NULL PRIMARY KEY
//	Foreign Keys:
//	  - bike_id -> bikes.bike_id
func (d Description) Render() string {
	var b strings.Builder
	for _, t := range d.Tables {
		fmt.Fprintf(&b, "\nTable: %s\n", t.Name)
		b.WriteString("Columns:\n")
		for _, c := range t.Columns {
			fmt.Fprintf(&b, "  - %s (%s)", c.Name, c.DataType)
			if !c.Nullable {
				b.WriteString(" NOT NULL")
			}
			if c.KeyRole == Primary {
				b.WriteString(" PRIMARY KEY")
			}
			b.WriteString("\n")
		}
		if len(t.ForeignKeys) > 0 {
			b.WriteString("Foreign Keys:\n")
			for _, fk := range t.ForeignKeys {
				fmt.Fprintf(&b, "  - %s -> %s.%s\n",
					fk.Column, fk.ReferencesTable, fk.ReferencesColumn)
			}
		}
	}
	return b.String()
}
