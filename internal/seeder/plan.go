package seeder

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/flashseed/internal/config"
)

// ApplyPlan returns entities with plan overrides applied. A plan naming an
// entity that is not in the catalog is an error.
func ApplyPlan(entities []Entity, plan *config.Plan) ([]Entity, error) {
	if plan == nil {
		return entities, nil
	}

	known := make(map[string]bool, len(entities))
	out := make([]Entity, len(entities))
	for i, e := range entities {
		known[e.Name] = true
		if plan.Delay != nil {
			e.Delay = *plan.Delay
		}
		if o, ok := plan.Entities[e.Name]; ok {
			if o.Minimum != nil {
				e.Minimum = *o.Minimum
			}
			if o.Fill != nil {
				e.Fill = *o.Fill
			}
			if o.Delay != nil {
				e.Delay = *o.Delay
			}
			if o.Enabled != nil {
				e.Disabled = !*o.Enabled
			}
			if o.Critical != nil {
				e.Critical = *o.Critical
			}
		}
		out[i] = e
	}

	for name := range plan.Entities {
		if !known[name] {
			return nil, fmt.Errorf("plan references unknown entity %q", name)
		}
	}
	return out, nil
}
