package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/san-kum/twobody/internal/config"
	"github.com/san-kum/twobody/internal/experiment"
)

// GridSearch tries every combination of values for the named override
// keys and keeps the one that minimizes a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best parameters and metric value. Combinations whose
// run fails are skipped; if none succeed the error of the last one is
// returned.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	registry *experiment.Registry,
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("got %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	s := &search{
		base:     base,
		registry: registry,
		metric:   metricName,
		best:     math.Inf(1),
	}
	g.searchRecursive(ctx, 0, make(map[string]float64), s)

	if s.bestParams == nil {
		if s.lastErr == nil {
			s.lastErr = fmt.Errorf("no parameter combinations to evaluate")
		}
		return nil, 0, s.lastErr
	}
	return s.bestParams, s.best, nil
}

type search struct {
	base       *config.Config
	registry   *experiment.Registry
	metric     string
	best       float64
	bestParams map[string]float64
	lastErr    error
}

func (s *search) evaluate(ctx context.Context, params map[string]float64) (float64, error) {
	overrides := make(map[string]string, len(params))
	for k, v := range params {
		overrides[k] = cast.ToString(v)
	}

	cfg := s.base.Clone()
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return 0, err
	}

	exp := experiment.New("search", cfg, nil)
	if err := exp.Setup(s.registry); err != nil {
		return 0, err
	}

	result, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}

	val, ok := result.Metrics[s.metric]
	if !ok {
		return 0, fmt.Errorf("unknown metric: %s", s.metric)
	}
	return val, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, s *search) {
	if ctx.Err() != nil {
		s.lastErr = ctx.Err()
		return
	}

	if depth == len(g.paramNames) {
		val, err := s.evaluate(ctx, current)
		if err != nil {
			s.lastErr = err
			return
		}

		if val < s.best || s.bestParams == nil {
			s.best = val
			s.bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				s.bestParams[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, s)
	}
}
