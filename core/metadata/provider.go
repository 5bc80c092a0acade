package metadata

import "context"

// Provider supplies one fragment of shared contextual metadata for the
// current execution scope. Returning an empty map is the normal way to signal
// "nothing to contribute here" and is not an error; errors are reserved for
// unexpected lookup failures.
//
// Providers are registered with an integer priority. Fragments from a higher
// priority provider win on conflicting keys, so a provider overrides another
// by registering with a priority that sorts it ahead.
type Provider interface {
	// Name identifies the provider in logs and failure reports.
	Name() string
	Provide(ctx context.Context) (map[string]string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ProviderName string
	Fn           func(ctx context.Context) (map[string]string, error)
}

func (p ProviderFunc) Name() string { return p.ProviderName }

func (p ProviderFunc) Provide(ctx context.Context) (map[string]string, error) {
	return p.Fn(ctx)
}
