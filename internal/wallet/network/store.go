package network

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Store persists custom network entries keyed by name.
type Store interface {
	Put(ctx context.Context, e Endpoint) error
	Delete(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) (Endpoint, bool, error)
	List(ctx context.Context) ([]Endpoint, error)
}

// MemoryStore is a mutex guarded in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Endpoint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Endpoint)}
}

func (m *MemoryStore) Put(_ context.Context, e Endpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[e.Name] = e

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[name]
	delete(m.entries, name)

	return ok, nil
}

func (m *MemoryStore) Get(_ context.Context, name string) (Endpoint, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]

	return e, ok, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Endpoint, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sortEndpoints(out)

	return out, nil
}

const defaultRedisKey = "evm-wallet:networks"

// RedisStore keeps entries in a single Redis hash so that several service
// instances share one registry.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}

	return &RedisStore{client: client, key: key}
}

// DialRedis parses a redis:// URL and verifies the connection.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	return client, nil
}

func (r *RedisStore) Put(ctx context.Context, e Endpoint) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "failed to encode network")
	}

	if err := r.client.HSet(ctx, r.key, e.Name, raw).Err(); err != nil {
		return errors.Wrap(err, "failed to store network")
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, name string) (bool, error) {
	n, err := r.client.HDel(ctx, r.key, name).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to delete network")
	}

	return n > 0, nil
}

func (r *RedisStore) Get(ctx context.Context, name string) (Endpoint, bool, error) {
	raw, err := r.client.HGet(ctx, r.key, name).Bytes()
	if errors.Is(err, redis.Nil) {
		return Endpoint{}, false, nil
	}
	if err != nil {
		return Endpoint{}, false, errors.Wrap(err, "failed to load network")
	}

	var e Endpoint
	if err := json.Unmarshal(raw, &e); err != nil {
		return Endpoint{}, false, errors.Wrapf(err, "failed to decode network %s", name)
	}

	return e, true, nil
}

func (r *RedisStore) List(ctx context.Context) ([]Endpoint, error) {
	all, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list networks")
	}

	out := make([]Endpoint, 0, len(all))
	for name, raw := range all {
		var e Endpoint
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, errors.Wrapf(err, "failed to decode network %s", name)
		}
		out = append(out, e)
	}
	sortEndpoints(out)

	return out, nil
}

func sortEndpoints(endpoints []Endpoint) {
	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].Name < endpoints[j].Name
	})
}
