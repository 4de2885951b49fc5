// Package network resolves network names to RPC endpoints and tags each
// endpoint with the network family it belongs to.
package network

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

// Registry resolves network names. Custom entries live in a Store and take
// precedence over the configured ones.
type Registry struct {
	store      Store
	fallback   Endpoint
	configured map[string]Endpoint
}

func NewRegistry(store Store, defaultEndpoint Endpoint, configured ...Endpoint) *Registry {
	if store == nil {
		store = NewMemoryStore()
	}
	if defaultEndpoint.Tag == "" {
		defaultEndpoint.Tag = Detect(defaultEndpoint.URL)
	}

	byName := make(map[string]Endpoint, len(configured))
	for _, e := range configured {
		e.Name = normalizeName(e.Name)
		if e.Tag == "" {
			e.Tag = Detect(e.URL)
		}
		byName[e.Name] = e
	}

	return &Registry{
		store:      store,
		fallback:   defaultEndpoint,
		configured: byName,
	}
}

func (r *Registry) Default() Endpoint {
	return r.fallback
}

// Add registers or replaces a custom network. An empty tag is detected from the URL.
func (r *Registry) Add(ctx context.Context, name string, rpcURL string, tag Tag) (Endpoint, error) {
	name = normalizeName(name)
	if name == "" {
		return Endpoint{}, errs.New(errs.KindInvalidArgument, "add network", "name must not be empty")
	}

	urls := ParseRPCURLs(rpcURL)
	if len(urls) == 0 {
		return Endpoint{}, errs.New(errs.KindInvalidArgument, "add network", "rpc_url must not be empty")
	}
	for _, url := range urls {
		if !isRawURL(url) {
			return Endpoint{}, errs.Newf(errs.KindInvalidArgument, "add network", "unsupported rpc url %q", url)
		}
	}

	if tag == "" {
		tag = Detect(rpcURL)
	}

	e := Endpoint{Name: name, URL: strings.Join(urls, ","), Tag: tag}
	if err := r.store.Put(ctx, e); err != nil {
		return Endpoint{}, errs.Wrap(errs.KindTransport, "add network", err)
	}

	log.Info().Str("network", e.Name).Str("tag", string(e.Tag)).Msg("Registered custom network")

	return e, nil
}

func (r *Registry) Remove(ctx context.Context, name string) error {
	name = normalizeName(name)

	removed, err := r.store.Delete(ctx, name)
	if err != nil {
		return errs.Wrap(errs.KindTransport, "remove network", err)
	}
	if !removed {
		return errs.Newf(errs.KindNotFound, "remove network", "network %q is not registered", name)
	}

	log.Info().Str("network", name).Msg("Removed custom network")

	return nil
}

// List returns configured networks followed by custom ones; a custom entry
// hides a configured entry of the same name.
func (r *Registry) List(ctx context.Context) ([]Endpoint, error) {
	custom, err := r.store.List(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransport, "list networks", err)
	}

	seen := make(map[string]struct{}, len(custom))
	for _, e := range custom {
		seen[e.Name] = struct{}{}
	}

	configured := make([]Endpoint, 0, len(r.configured))
	for name, e := range r.configured {
		if _, ok := seen[name]; !ok {
			configured = append(configured, e)
		}
	}
	sortEndpoints(configured)

	return append(configured, custom...), nil
}

// Resolve maps a caller supplied network to an endpoint: empty selects the
// default, then custom and configured names are tried, then raw RPC URLs.
func (r *Registry) Resolve(ctx context.Context, network string) (Endpoint, error) {
	network = strings.TrimSpace(network)
	if network == "" {
		return r.fallback, nil
	}

	name := normalizeName(network)

	e, ok, err := r.store.Get(ctx, name)
	if err != nil {
		return Endpoint{}, errs.Wrap(errs.KindTransport, "resolve network", err)
	}
	if ok {
		return e, nil
	}

	if e, ok := r.configured[name]; ok {
		return e, nil
	}

	if isRawURL(network) {
		return NewEndpoint(network), nil
	}

	return Endpoint{}, errs.Newf(errs.KindUnknownNetwork, "resolve network", "unknown network %q", network)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
