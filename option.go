package ambient

import (
	"github.com/aldzban/ambient/registry"
)

type Option func(*App)

// WithSource overrides where the root package manifest loads from. The
// default is the configured package path on disk. Tests use this to load
// from in-memory sources.
func WithSource(src registry.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithDeploymentStore injects a deployment store, replacing the one built
// from the Redis configuration.
func WithDeploymentStore(store *registry.DeploymentStore) Option {
	return func(a *App) {
		a.store = store
	}
}
