// Package table iterates index computations over every parameter of a
// draw table, assembling one result row per parameter.
package table

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/uyouii/posterior-indices/model"
	"github.com/uyouii/posterior-indices/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// IndexFunc computes the index columns for one parameter's draws.
type IndexFunc func(ctx context.Context, draws []float64) (map[string]float64, error)

// Apply maps fn over every parameter of the table, in parallel across
// parameters, and reassembles the rows in the table's insertion order.
// A parameter whose computation fails becomes a Missing row with NaN
// values and the rest of the table keeps going; the returned error is
// non-nil only when every parameter failed.
func Apply(ctx context.Context, t *model.DrawTable, columns []string, fn IndexFunc) (*model.IndexResult, error) {
	logger := utils.GetLogger(ctx)

	res := &model.IndexResult{
		Columns: columns,
		Rows:    []model.IndexRow{},
	}

	params := t.Parameters()
	if len(params) == 0 {
		return res, nil
	}

	rows := make([]model.IndexRow, len(params))
	errs := make([]error, len(params))

	// per-parameter work is independent, fan out and slot results by index
	workers := runtime.GOMAXPROCS(0)
	if workers > len(params) {
		workers = len(params)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				rows[i], errs[i] = applyOne(ctx, params[i], columns, fn)
			}
		}()
	}
	for i := range params {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	failed := 0
	for i := range rows {
		if errs[i] != nil {
			failed++
			logger.Warn("index computation failed, record row as missing",
				zap.String("parameter", params[i].Name), zap.Error(errs[i]))
		}
		res.Rows = append(res.Rows, rows[i])
	}

	if failed == len(params) {
		return res, multierr.Combine(errs...)
	}
	return res, nil
}

func applyOne(ctx context.Context, p model.Parameter, columns []string, fn IndexFunc) (row model.IndexRow, err error) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger(ctx).Error("index computation recover panic error!",
				zap.Any("err", r), zap.String("panic info", utils.GetPanicInfo()),
				zap.String("parameter", p.Name))
			row = missingRow(p, columns)
			err = fmt.Errorf("index computation panic: %v", r)
		}
	}()

	row = model.IndexRow{
		Parameter: p.Name,
		Effects:   p.Effects,
		Component: p.Component,
	}

	values, err := fn(ctx, p.Draws)
	if err != nil {
		return missingRow(p, columns), err
	}

	row.Values = values
	return row, nil
}

func missingRow(p model.Parameter, columns []string) model.IndexRow {
	values := make(map[string]float64, len(columns))
	for _, col := range columns {
		values[col] = math.NaN()
	}
	return model.IndexRow{
		Parameter: p.Name,
		Effects:   p.Effects,
		Component: p.Component,
		Values:    values,
		Missing:   true,
	}
}
