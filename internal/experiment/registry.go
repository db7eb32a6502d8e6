package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/integrators"
	"github.com/san-kum/twobody/internal/metrics"
)

type Registry struct {
	integrators map[string]func() dynamo.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Stepper),
	}

	r.integrators["rk4"] = func() dynamo.Stepper { return integrators.NewRK4() }
	r.integrators["coupled"] = func() dynamo.Stepper { return integrators.NewCoupledRK4() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Stepper, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(a, b dynamo.Particle) []dynamo.Metric {
	return metrics.Defaults(a, b)
}
