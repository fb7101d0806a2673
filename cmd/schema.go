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
	"fmt"

	"github.com/bikeq/bikeq/internal/iodb"
	"github.com/bikeq/bikeq/internal/iostore"
	"github.com/bikeq/bikeq/pkg/answer"
	"github.com/bikeq/bikeq/pkg/mapper"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// schemaReport is what the schema command prints when ranking or
// sampling is requested.
type schemaReport struct {
	Question string               `json:"question,omitempty" yaml:"question,omitempty"`
	Columns  []mapper.ColumnScore `json:"columns,omitempty"  yaml:"columns,omitempty"`
	Samples  map[string][]any     `json:"samples,omitempty"  yaml:"samples,omitempty"`
}

// getSchemaCmd returns the schema command.
func getSchemaCmd() *cobra.Command {
	var (
		asYAML   bool
		question string
		samples  int
	)

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the live database schema",
		Long: `Show the schema of the bike-share tables as it is seen by
the SQL generator.

Without flags the schema is printed in the same text form that is
sent to the language model. With --question columns are ranked by
relevance to the question. With --samples distinct values of the
ranked columns (or of every column) are shown.

Examples:
  bikeq schema
  bikeq schema --yaml
  bikeq schema --question "rides on rainy days" --samples 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSchema(cmd, asYAML, question, samples)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	schemaCmd.Flags().BoolVar(&asYAML, "yaml", false,
		"print output as YAML")
	schemaCmd.Flags().StringVarP(&question, "question", "q", "",
		"rank columns by relevance to the question")
	schemaCmd.Flags().IntVar(&samples, "samples", 0,
		"number of distinct values to show per column")

	return schemaCmd
}

func runSchema(
	cmd *cobra.Command,
	asYAML bool,
	question string,
	samples int,
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	op := iodb.NewPgxOperator(cfg.JobsNumber)
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	store := iostore.New(op.Pool())
	desc, err := store.Describe(ctx)
	if err != nil {
		return err
	}

	if question == "" && samples <= 0 {
		return printDescription(cmd, desc, asYAML)
	}

	rep := schemaReport{Question: question}
	if question != "" {
		rep.Columns = mapper.RankColumns(desc, question, 10)
	} else {
		rep.Columns = mapper.RankColumns(desc, "", 0)
	}

	if samples > 0 {
		rep.Samples = make(map[string][]any)
		for _, c := range rep.Columns {
			vals, err := store.SampleValues(ctx, c.Table, c.Column, samples)
			if err != nil {
				return err
			}
			for i := range vals {
				vals[i] = answer.Value(vals[i])
			}
			rep.Samples[c.Table+"."+c.Column] = vals
		}
	}
	if question == "" {
		rep.Columns = nil
	}

	return printReport(cmd, rep, asYAML)
}

func printDescription(
	cmd *cobra.Command,
	desc schema.Description,
	asYAML bool,
) error {
	if !asYAML {
		fmt.Fprint(cmd.OutOrStdout(), desc.Render())
		return nil
	}
	out, err := yaml.Marshal(desc)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func printReport(cmd *cobra.Command, rep schemaReport, asYAML bool) error {
	var (
		out []byte
		err error
	)
	if asYAML {
		out, err = yaml.Marshal(rep)
	} else {
		out, err = gnfmt.GNjson{Pretty: true}.Encode(rep)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
