package morphdict

import (
	"context"

	"github.com/lwch/logging"
)

// fetchGroup requests the resources of g one after the other, in declared
// order, and stops at the first failure.
func fetchGroup(ctx context.Context, src ByteSource, location string, g Group) ([]View, int, error) {
	views := make([]View, 0, len(g.Resources))
	var total int
	for _, r := range g.Resources {
		raw, err := src.Fetch(ctx, Resolve(location, r.ID))
		if err != nil {
			return nil, total, &AcquisitionError{Group: g.Name, Resource: r.ID, Err: err}
		}
		v, err := NewView(r.Type, raw)
		if err != nil {
			return nil, total, &LayoutError{Resource: r.ID, Type: r.Type, Len: len(raw)}
		}
		logging.Info("%s: %d %s elements", r.ID, v.Len(), r.Type)
		total += len(raw)
		views = append(views, v)
	}
	return views, total, nil
}
