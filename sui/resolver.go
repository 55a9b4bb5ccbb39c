package sui

import (
	"context"
	"sync"

	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/swaperr"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds the parallel sui_getObject calls of Prefetch.
const maxConcurrentLookups = 8

type (
	// Resolver turns object ids into transaction object inputs.
	// Lookups are cached for the lifetime of the resolver, so one resolver
	// should serve a single build.
	Resolver struct {
		client objectGetter

		mu    sync.Mutex
		cache map[string]*ObjectData
	}

	objectGetter interface {
		GetObject(ctx context.Context, objectID string) (*ObjectData, error)
	}
)

// NewResolver returns a resolver backed by the given client.
func NewResolver(client objectGetter) *Resolver {
	return &Resolver{client: client, cache: make(map[string]*ObjectData)}
}

// Prefetch resolves the given ids concurrently and caches them.
// Arguments are still inserted into the transaction in the order the
// adapters ask for them.
func (r *Resolver) Prefetch(ctx context.Context, ids ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		key, err := ptb.NormalizeAddress(id)
		if err != nil {
			return swaperr.NewResolution(id, err)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		id := id
		g.Go(func() error {
			_, err := r.object(gctx, id)
			return err
		})
	}

	return g.Wait()
}

// Object returns the on-chain reference of the given object id.
func (r *Resolver) Object(ctx context.Context, id string) (*ObjectData, error) {
	return r.object(ctx, id)
}

// OwnedObject returns an owned (or immutable) object input for the given id.
func (r *Resolver) OwnedObject(ctx context.Context, id string) (ptb.ObjectArg, error) {
	obj, err := r.object(ctx, id)
	if err != nil {
		return ptb.ObjectArg{}, err
	}
	return ptb.OwnedObject(obj.ObjectID, uint64(obj.Version), obj.Digest), nil
}

// SharedObject returns a shared object input for the given id,
// passed mutably or immutably.
func (r *Resolver) SharedObject(ctx context.Context, id string, mutable bool) (ptb.ObjectArg, error) {
	obj, err := r.object(ctx, id)
	if err != nil {
		return ptb.ObjectArg{}, err
	}
	if !obj.Owner.IsShared() {
		return ptb.ObjectArg{}, swaperr.NewResolution(id, ErrObjectNotShared)
	}
	return ptb.SharedObject(obj.ObjectID, uint64(*obj.Owner.InitialSharedVersion), mutable), nil
}

func (r *Resolver) object(ctx context.Context, id string) (*ObjectData, error) {
	key, err := ptb.NormalizeAddress(id)
	if err != nil {
		return nil, swaperr.NewResolution(id, err)
	}

	r.mu.Lock()
	obj, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return obj, nil
	}

	obj, err = r.client.GetObject(ctx, key)
	if err != nil {
		return nil, swaperr.NewResolution(id, err)
	}

	r.mu.Lock()
	r.cache[key] = obj
	r.mu.Unlock()

	return obj, nil
}
