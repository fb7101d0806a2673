// Package iopopulate implements Populator interface for importing
// bike-share data into PostgreSQL.
// This is an impure I/O package that reads an SQLite export and
// performs bulk inserts.
package iopopulate

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/bikeq/bikeq/pkg/config"
	"github.com/bikeq/bikeq/pkg/db"
	"github.com/bikeq/bikeq/pkg/lifecycle"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	_ "modernc.org/sqlite"
)

// populator implements the Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Populator.
func New(cfg *config.Config, op db.Operator) lifecycle.Populator {
	return &populator{cfg: cfg, operator: op}
}

type tableNamer interface {
	TableName() string
}

// Populate imports stations, bikes, trips and daily_weather from the
// SQLite file in cfg.Populate.SourcePath. Tables are imported parents
// first, so foreign keys hold at every step. A failed table does not
// stop the others.
func (p *populator) Populate(ctx context.Context) (map[string]int64, error) {
	pool := p.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	startTime := time.Now()
	path := p.cfg.Populate.SourcePath
	if _, err := os.Stat(path); err != nil {
		return nil, SourceNotFoundError(path, err)
	}

	src, err := openSource(path)
	if err != nil {
		return nil, SourceNotFoundError(path, err)
	}
	defer src.Close()

	slog.Info("Starting database population", "source", path)

	if p.cfg.Populate.Truncate {
		if err = truncate(ctx, pool); err != nil {
			return nil, err
		}
		gn.Info("Removed existing rows")
	}

	imp := importer{
		src:       src,
		dst:       pool,
		batchSize: p.cfg.Database.BatchSize,
		progress:  true,
	}

	res := make(map[string]int64)
	models := schema.AllModels()
	var failed int
	for _, m := range models {
		table := m.(tableNamer).TableName()
		tableStart := time.Now()

		n, err := imp.importTable(ctx, table, m)
		if err != nil {
			if ctx.Err() != nil {
				return res, err
			}
			failed++
			slog.Error("Failed to import table", "table", table, "error", err)
			gn.PrintErrorMessage(err)
			continue
		}

		res[table] = n
		slog.Info("Table imported",
			"table", table,
			"rows", n,
			"duration", gnfmt.TimeString(time.Since(tableStart).Seconds()),
		)
		gn.Info("Imported <em>%s</em> rows into %s",
			humanize.Comma(n), table)
	}

	totalDuration := time.Since(startTime)
	slog.Info("Population complete",
		"failed", failed,
		"total", len(models),
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Population complete
Tables imported: %d, failed %d.
		Elapsed time: <em>%s</em>
`,
		len(res),
		failed,
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if failed == len(models) {
		return res, AllTablesFailedError(failed)
	}
	return res, nil
}

// openSource opens the SQLite export read-only.
func openSource(path string) (*sql.DB, error) {
	res, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if err = res.Ping(); err != nil {
		res.Close()
		return nil, err
	}
	return res, nil
}
