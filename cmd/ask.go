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
	"errors"
	"fmt"
	"strings"

	"github.com/bikeq/bikeq/internal/iodb"
	"github.com/bikeq/bikeq/internal/iostore"
	"github.com/bikeq/bikeq/pkg/answer"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getAskCmd returns the ask command.
func getAskCmd() *cobra.Command {
	var sqlOnly bool

	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question from the command line",
		Long: `Answer one question about bike-share data without starting
the HTTP service. The output is the same JSON document that
POST /query returns.

Examples:
  bikeq ask "How many trips happened on rainy days?"
  bikeq ask --sql-only "average trip distance in June 2025"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAsk(cmd, strings.Join(args, " "), sqlOnly)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	askCmd.Flags().BoolVar(&sqlOnly, "sql-only", false,
		"print only the generated SQL")

	return askCmd
}

func runAsk(cmd *cobra.Command, question string, sqlOnly bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	op := iodb.NewPgxOperator(cfg.JobsNumber)
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	svc, err := buildService(ctx, iostore.New(op.Pool()))
	if err != nil {
		return err
	}

	res, status := svc.Answer(ctx, question)
	if sqlOnly && res.SQL != nil {
		fmt.Fprintln(cmd.OutOrStdout(), *res.SQL)
	} else {
		out, err := gnfmt.GNjson{Pretty: true}.Encode(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}

	if status != answer.StatusOK && res.Error != nil {
		return errors.New(*res.Error)
	}
	return nil
}
