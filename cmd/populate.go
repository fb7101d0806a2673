/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/bikeq/bikeq/internal/iodb"
	"github.com/bikeq/bikeq/internal/iopopulate"
	"github.com/bikeq/bikeq/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPopulateCmd() *cobra.Command {
	var (
		source   string
		truncate bool
	)

	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate database from an SQLite export",
		Long: `Import bike-share data from an SQLite export.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Opens the SQLite file given with --source
  3. Copies stations, bikes, trips and daily_weather tables,
     parents first, in batches of database.batch_size rows
  4. Reports progress and statistics

The export must have tables with the same names and columns as
the bike-share schema. Dates may be stored as text.

Examples:
  bikeq populate --source export.sqlite
  bikeq populate -s export.sqlite --truncate`,
		Aliases: []string{"import"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPopulate(cmd, source, truncate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	populateCmd.Flags().StringVarP(
		&source, "source", "s", "",
		"path to SQLite file with bike-share tables",
	)
	populateCmd.Flags().BoolVarP(
		&truncate, "truncate", "t", false,
		"remove existing rows before import",
	)
	_ = populateCmd.MarkFlagRequired("source")

	return populateCmd
}

func runPopulate(
	cmd *cobra.Command,
	source string,
	truncate bool,
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	populateOpts := []config.Option{
		config.OptPopulateSourcePath(source),
	}
	if cmd.Flags().Changed("truncate") {
		populateOpts = append(populateOpts,
			config.OptPopulateTruncate(truncate))
	}
	cfg.Update(populateOpts)

	op := iodb.NewPgxOperator(cfg.JobsNumber)
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
	Run 'bikeq create' first to initialize the schema.`)
		return nil
	}

	p := iopopulate.New(cfg, op)
	_, err = p.Populate(ctx)
	return err
}
