package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vendorscreen/pkg/domain"
)

// Name identifies one of the fixed public-registry providers.
type Name string

const (
	NameNTS      Name = "NTS"
	NameOpenDART Name = "OpenDART"
	NameG2B      Name = "G2B"
)

// Order is the fixed resolution and snapshot order used by screenings and reports.
var Order = []Name{NameNTS, NameOpenDART, NameG2B}

func (n Name) String() string { return string(n) }

// IsValid reports whether n is one of the fixed providers.
func (n Name) IsValid() bool {
	switch n {
	case NameNTS, NameOpenDART, NameG2B:
		return true
	}
	return false
}

// Status is the lookup outcome recorded with every result.
type Status string

const (
	StatusOK            Status = "ok"
	StatusDisabled      Status = "disabled"
	StatusNotApplicable Status = "not_applicable"
	StatusError         Status = "error"
)

// DefaultTimeout bounds a single upstream lookup when Config.Timeout is unset.
const DefaultTimeout = 5 * time.Second

// Config is handed to each normalizer at construction. An empty APIKey puts
// the provider in disabled mode.
type Config struct {
	APIKey     string
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Enabled reports whether live lookups are configured.
func (c Config) Enabled() bool { return c.APIKey != "" }

// WithDefaults fills the endpoint and timeout when unset.
func (c Config) WithDefaults(endpoint string) Config {
	if c.Endpoint == "" {
		c.Endpoint = endpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return c
}

// Normalizer turns one provider's upstream response into a fixed-shape Result.
// Fetch never fails: every failure path degrades to a fallback payload with
// StatusDisabled or StatusError.
type Normalizer interface {
	Name() Name
	Fetch(ctx context.Context, bizRegNo domain.BizRegNo) Result
}

// Registry maintains the normalizers available to screenings.
type Registry struct {
	normalizers map[Name]Normalizer
}

// NewRegistry creates a registry and registers the given normalizers.
func NewRegistry(ns ...Normalizer) (*Registry, error) {
	r := &Registry{normalizers: make(map[Name]Normalizer, len(ns))}
	for _, n := range ns {
		if err := r.Register(n); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a normalizer to the registry.
func (r *Registry) Register(n Normalizer) error {
	name := n.Name()
	if !name.IsValid() {
		return fmt.Errorf("unknown provider %q", name)
	}
	if _, exists := r.normalizers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}
	r.normalizers[name] = n
	return nil
}

// Get retrieves a normalizer by name.
func (r *Registry) Get(name Name) (Normalizer, bool) {
	n, ok := r.normalizers[name]
	return n, ok
}

// Complete reports whether every provider in Order is registered.
func (r *Registry) Complete() error {
	for _, name := range Order {
		if _, ok := r.normalizers[name]; !ok {
			return fmt.Errorf("provider %s not registered", name)
		}
	}
	return nil
}
