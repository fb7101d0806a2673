package ioschema

import (
	"testing"

	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestConstraintName(t *testing.T) {
	ref := schema.Reference{
		Table: "trips", Column: "start_station_id",
		RefTable: "stations", RefColumn: "station_id",
	}
	assert.Equal(t, "fk_trips_start_station_id", constraintName(ref))
}

func TestFormatConstraintSQL(t *testing.T) {
	tests := []struct {
		name     string
		ref      schema.Reference
		expected string
	}{
		{
			name: "bike of a trip",
			ref: schema.Reference{
				Table: "trips", Column: "bike_id",
				RefTable: "bikes", RefColumn: "bike_id",
			},
			expected: `ALTER TABLE "trips" ADD CONSTRAINT ` +
				`"fk_trips_bike_id" FOREIGN KEY ("bike_id") ` +
				`REFERENCES "bikes" ("bike_id") ON DELETE SET NULL`,
		},
		{
			name: "current station of a bike",
			ref: schema.Reference{
				Table: "bikes", Column: "current_station_id",
				RefTable: "stations", RefColumn: "station_id",
			},
			expected: `ALTER TABLE "bikes" ADD CONSTRAINT ` +
				`"fk_bikes_current_station_id" FOREIGN KEY ` +
				`("current_station_id") REFERENCES "stations" ` +
				`("station_id") ON DELETE SET NULL`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatConstraintSQL(tt.ref))
		})
	}
}

// every reference points from an allowed table to an allowed table
func TestReferencesAreKnown(t *testing.T) {
	for _, ref := range schema.References() {
		assert.True(t, schema.IsAllowedTable(ref.Table), ref.Table)
		assert.True(t, schema.IsAllowedTable(ref.RefTable), ref.RefTable)
	}
}
