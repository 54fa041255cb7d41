package providers

import (
	"context"

	"golang.org/x/sync/singleflight"

	"vendorscreen/pkg/domain"
)

// Coalesced shares one upstream call between concurrent lookups of the same
// registration number.
type Coalesced struct {
	next  Normalizer
	group singleflight.Group
}

// Coalesce wraps n so concurrent identical lookups are deduplicated.
func Coalesce(n Normalizer) *Coalesced {
	return &Coalesced{next: n}
}

func (c *Coalesced) Name() Name { return c.next.Name() }

func (c *Coalesced) Fetch(ctx context.Context, bizRegNo domain.BizRegNo) Result {
	v, _, _ := c.group.Do(bizRegNo.String(), func() (any, error) {
		return c.next.Fetch(context.WithoutCancel(ctx), bizRegNo), nil
	})
	return v.(Result)
}
