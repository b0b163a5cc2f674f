package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/aldzban/ambient/codec"
	"github.com/aldzban/ambient/manifest"
)

const (
	// deploymentCacheSize is the freecache budget for hot deployment bundles.
	deploymentCacheSize = 32 * 1024 * 1024
	// deploymentCacheTTL is in seconds; 0 would mean no expiry.
	deploymentCacheTTL = 300
)

var ErrDeploymentNotFound = eris.New("deployment not found")

// Deployment is an immutable bundle of one package's files, pinned by an
// opaque identifier. Dependencies reference deployments by this id.
type Deployment struct {
	ID        string            `json:"id"`
	PackageID string            `json:"package_id"`
	Files     map[string][]byte `json:"files"`
}

// Source exposes the bundle to the loader.
func (d *Deployment) Source() MemorySource {
	return NewMemorySource("deployment:"+d.ID, d.Files)
}

type Options = redis.Options

// DeploymentStore keeps deployment bundles in Redis, fronted by an in-process
// freecache so repeated resolutions of the same pin skip the round trip.
type DeploymentStore struct {
	Namespace string
	Client    *redis.Client
	Log       zerolog.Logger

	cache *freecache.Cache
}

func NewDeploymentStore(options Options, namespace string) *DeploymentStore {
	return &DeploymentStore{
		Namespace: namespace,
		Client:    redis.NewClient(&options),
		Log:       zerolog.New(os.Stdout),
		cache:     freecache.NewCache(deploymentCacheSize),
	}
}

func (s *DeploymentStore) Close() error {
	if err := s.Client.Close(); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}

func (s *DeploymentStore) deploymentKey(id string) string {
	return fmt.Sprintf("%s:deployment:%s", s.Namespace, id)
}

// Get fetches a deployment bundle by id.
func (s *DeploymentStore) Get(ctx context.Context, id string) (*Deployment, error) {
	if bz, err := s.cache.Get([]byte(id)); err == nil {
		return codecDecodeDeployment(bz)
	}

	bz, err := s.Client.Get(ctx, s.deploymentKey(id)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrapf(ErrDeploymentNotFound, "%q", id)
	} else if err != nil {
		return nil, eris.Wrap(err, "")
	}

	if err := s.cache.Set([]byte(id), bz, deploymentCacheTTL); err != nil {
		s.Log.Debug().Err(err).Str("deployment_id", id).Msg("failed to cache deployment")
	}
	return codecDecodeDeployment(bz)
}

// Put stores a deployment bundle. Deployments are immutable; overwriting an
// existing id is refused.
func (s *DeploymentStore) Put(ctx context.Context, d *Deployment) error {
	bz, err := codec.Encode(d)
	if err != nil {
		return eris.Wrap(err, "failed to encode deployment")
	}
	ok, err := s.Client.SetNX(ctx, s.deploymentKey(d.ID), bz, 0).Result()
	if err != nil {
		return eris.Wrap(err, "")
	}
	if !ok {
		return eris.Errorf("deployment %q already exists", d.ID)
	}
	return nil
}

// Deploy bundles the package at the source and stores it under a fresh
// deployment id. Only the manifest is bundled; asset files stay wherever the
// asset pipeline put them.
func (s *DeploymentStore) Deploy(ctx context.Context, src Source) (*Deployment, error) {
	data, err := src.Get(ManifestFilename)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, err
	}
	for alias, dep := range m.Dependencies {
		if dep.IsEnabled() && dep.Deployment == "" {
			return nil, eris.Errorf(
				"cannot deploy: dependency %q is pinned by path only; deploy it first", alias)
		}
	}

	d := &Deployment{
		ID:        uuid.NewString(),
		PackageID: m.Package.ID,
		Files:     map[string][]byte{ManifestFilename: data},
	}
	if err := s.Put(ctx, d); err != nil {
		return nil, err
	}

	s.Log.Info().
		Str("deployment_id", d.ID).
		Str("package_id", d.PackageID).
		Msg("deployed package")
	return d, nil
}

func codecDecodeDeployment(bz []byte) (*Deployment, error) {
	d, err := codec.Decode[Deployment](bz)
	if err != nil {
		return nil, eris.Wrap(err, "failed to decode deployment")
	}
	return &d, nil
}
