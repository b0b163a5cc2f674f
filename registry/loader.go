package registry

import (
	"bytes"
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"github.com/aldzban/ambient/manifest"
	"github.com/aldzban/ambient/semantic"
)

// Loader reads a package manifest, follows its dependency pins depth-first,
// and feeds every package to the semantic dependency-first. Packages reached
// through more than one chain load once; dependency cycles are an error.
type Loader struct {
	sem         *semantic.Semantic
	deployments *DeploymentStore

	loaded    map[string]string // source key -> package id
	loading   map[string]bool
	manifests map[string][]byte // package id -> manifest bytes
}

type LoaderOption func(*Loader)

// WithDeploymentStore lets the loader follow deployment-pinned dependencies.
// Without it, only path pins resolve.
func WithDeploymentStore(store *DeploymentStore) LoaderOption {
	return func(l *Loader) {
		l.deployments = store
	}
}

func NewLoader(sem *semantic.Semantic, opts ...LoaderOption) *Loader {
	l := &Loader{
		sem:       sem,
		loaded:    make(map[string]string),
		loading:   make(map[string]bool),
		manifests: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads the package at the source along with everything it depends on
// and returns the resolved root package.
func (l *Loader) Load(ctx context.Context, src Source) (*semantic.Package, error) {
	id, err := l.load(ctx, src, nil)
	if err != nil {
		return nil, err
	}
	return l.sem.Package(id)
}

func (l *Loader) load(ctx context.Context, src Source, chain []string) (string, error) {
	key := src.Key()
	if id, done := l.loaded[key]; done {
		return id, nil
	}
	if l.loading[key] {
		cycle := append(chain, key)
		return "", eris.Errorf("dependency cycle: %s", strings.Join(cycle, " -> "))
	}
	l.loading[key] = true
	defer delete(l.loading, key)

	data, err := src.Get(ManifestFilename)
	if err != nil {
		return "", err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return "", eris.Wrapf(err, "invalid manifest at %q", key)
	}

	// The same package can be pinned by path in one place and by deployment
	// in another; the first load wins, as long as both sources carry the
	// same manifest.
	if _, err := l.sem.Package(m.Package.ID); err == nil {
		if prior, ok := l.manifests[m.Package.ID]; ok && !bytes.Equal(prior, data) {
			return "", eris.Errorf(
				"package %q at %q does not match the already-loaded copy", m.Package.ID, key)
		}
		l.loaded[key] = m.Package.ID
		return m.Package.ID, nil
	}

	deps := make(map[string]string, len(m.Dependencies))
	for alias, dep := range m.Dependencies {
		if !dep.IsEnabled() {
			continue
		}
		depSrc, err := l.dependencySource(ctx, src, dep)
		if err != nil {
			return "", eris.Wrapf(err, "package %q dependency %q", m.Package.ID, alias)
		}
		depID, err := l.load(ctx, depSrc, append(chain, key))
		if err != nil {
			return "", err
		}
		deps[alias] = depID
	}

	pkg, err := l.sem.AddPackage(m, deps)
	if err != nil {
		return "", err
	}
	l.loaded[key] = string(pkg.ID)
	l.manifests[string(pkg.ID)] = data

	log.Debug().
		Str("package_id", string(pkg.ID)).
		Str("source", key).
		Int("dependencies", len(deps)).
		Msg("loaded package")
	return string(pkg.ID), nil
}

// dependencySource picks where a dependency loads from. A path pin wins over
// a deployment pin so a local checkout can shadow a pinned deployment; when
// the path is not reachable from the source, as inside a deployed bundle that
// only carries its own manifest, a dual-pinned dependency falls back to the
// deployment pin.
func (l *Loader) dependencySource(ctx context.Context, src Source, dep manifest.DependencyDecl) (Source, error) {
	if dep.Path != "" {
		sub := src.Sub(dep.Path)
		if dep.Deployment == "" {
			return sub, nil
		}
		if _, err := sub.Get(ManifestFilename); err == nil {
			return sub, nil
		}
	}
	if l.deployments == nil {
		return nil, eris.New("deployment pin requires a deployment store")
	}
	d, err := l.deployments.Get(ctx, dep.Deployment)
	if err != nil {
		return nil, err
	}
	return d.Source(), nil
}
