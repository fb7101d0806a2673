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

	"github.com/bikeq/bikeq/internal/iollm"
	"github.com/bikeq/bikeq/pkg/answer"
	"github.com/bikeq/bikeq/pkg/db"
	"github.com/bikeq/bikeq/pkg/entity"
	"github.com/bikeq/bikeq/pkg/mapper"
	"github.com/bikeq/bikeq/pkg/period"
	"github.com/bikeq/bikeq/pkg/synth"
)

// buildService assembles the question pipeline from configuration.
// All calendar phrases share one resolver anchored at
// query.reference_date.
func buildService(ctx context.Context, store db.Store) (*answer.Service, error) {
	res := period.New(period.OptReference(cfg.ReferenceTime()))

	gen, err := iollm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	ext := entity.New(entity.OptResolver(res))
	mp := mapper.New(mapper.OptResolver(res))
	syn := synth.New(gen, synth.OptTimeout(cfg.GenerationTimeout()))

	return answer.New(ext, mp, syn, store), nil
}
