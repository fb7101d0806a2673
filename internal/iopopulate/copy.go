package iopopulate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/cheggaaa/pb/v3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// copier is the part of pgxpool.Pool used for bulk inserts.
type copier interface {
	CopyFrom(
		ctx context.Context,
		table pgx.Identifier,
		columns []string,
		rows pgx.CopyFromSource,
	) (int64, error)
}

// importer moves one table at a time from src to dst.
type importer struct {
	src       *sql.DB
	dst       copier
	batchSize int
	progress  bool
}

// importTable streams rows of a table from SQLite to PostgreSQL. One
// goroutine reads and converts rows, another one sends them in batches
// with CopyFrom.
func (imp importer) importTable(
	ctx context.Context,
	table string,
	model any,
) (int64, error) {
	cols := schema.Columns(model)
	kinds := columnKinds(model)

	total, err := imp.count(ctx, table)
	if err != nil {
		return 0, SourceReadError(table, err)
	}

	var bar *pb.ProgressBar
	if imp.progress {
		bar = pb.Full.Start64(total)
		bar.Set("prefix", fmt.Sprintf("Importing %s: ", table))
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	chRows := make(chan []any, imp.batch())
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chRows)
		return imp.read(ctx, table, cols, kinds, chRows)
	})

	var copied int64
	g.Go(func() error {
		var err error
		copied, err = imp.write(ctx, table, cols, chRows, bar)
		return err
	})

	if err = g.Wait(); err != nil {
		return copied, err
	}
	return copied, nil
}

func (imp importer) batch() int {
	if imp.batchSize > 0 {
		return imp.batchSize
	}
	return 10_000
}

func (imp importer) count(ctx context.Context, table string) (int64, error) {
	var res int64
	q := "SELECT count(*) FROM " + pgx.Identifier{table}.Sanitize()
	err := imp.src.QueryRowContext(ctx, q).Scan(&res)
	return res, err
}

// read sends converted rows to chRows.
func (imp importer) read(
	ctx context.Context,
	table string,
	cols []string,
	kinds []kind,
	chRows chan<- []any,
) error {
	quoted := make([]string, len(cols))
	for i := range cols {
		quoted[i] = pgx.Identifier{cols[i]}.Sanitize()
	}
	q := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(quoted, ", "), pgx.Identifier{table}.Sanitize())

	rows, err := imp.src.QueryContext(ctx, q)
	if err != nil {
		return SourceReadError(table, err)
	}
	defer rows.Close()

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err = rows.Scan(ptrs...); err != nil {
			return SourceReadError(table, err)
		}

		row := make([]any, len(cols))
		for i, v := range vals {
			row[i], err = convert(v, kinds[i])
			if err != nil {
				return SourceReadError(table,
					fmt.Errorf("column %s: %w", cols[i], err))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chRows <- row:
		}
	}
	if err = rows.Err(); err != nil {
		return SourceReadError(table, err)
	}
	return nil
}

// write collects rows into batches and copies them into table.
func (imp importer) write(
	ctx context.Context,
	table string,
	cols []string,
	chRows <-chan []any,
	bar *pb.ProgressBar,
) (int64, error) {
	var res int64
	size := imp.batch()
	batch := make([][]any, 0, size)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := imp.dst.CopyFrom(
			ctx,
			pgx.Identifier{table},
			cols,
			pgx.CopyFromRows(batch),
		)
		if err != nil {
			return CopyError(table, err)
		}
		res += n
		if bar != nil {
			bar.Add(len(batch))
		}
		batch = batch[:0]
		return nil
	}

	for row := range chRows {
		batch = append(batch, row)
		if len(batch) < size {
			continue
		}
		if err := flush(); err != nil {
			return res, err
		}
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, flush()
}

// truncate removes rows of all bike-share tables in one statement,
// so foreign keys do not dictate the order.
func truncate(ctx context.Context, pool *pgxpool.Pool) error {
	tables := schema.AllowedTables()
	for i := range tables {
		tables[i] = pgx.Identifier{tables[i]}.Sanitize()
	}
	q := "TRUNCATE TABLE " + strings.Join(tables, ", ")
	if _, err := pool.Exec(ctx, q); err != nil {
		return TruncateError(err)
	}
	return nil
}
