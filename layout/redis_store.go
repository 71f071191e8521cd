package layout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key RedisStore writes.
const DefaultKeyPrefix = "gridpath:"

// RedisStore keeps each layout as a JSON string under <prefix>layout:<name>
// and the set of names under <prefix>layouts. Writes to one name are
// serialised across processes with a redsync mutex.
type RedisStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	now    func() time.Time
}

// NewRedisStore wraps client. An empty prefix selects DefaultKeyPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	pool := goredis.NewPool(client)
	return &RedisStore{
		client: client,
		locker: redsync.New(pool),
		prefix: prefix,
		now:    time.Now,
	}
}

func (r *RedisStore) layoutKey(name string) string { return r.prefix + "layout:" + name }
func (r *RedisStore) indexKey() string { return r.prefix + "layouts" }
func (r *RedisStore) lockKey(name string) string { return r.prefix + "lock:" + name }

// withLock runs fn while holding the per-name mutex.
func (r *RedisStore) withLock(ctx context.Context, name string, fn func() error) error {
	mutex := r.locker.NewMutex(r.lockKey(name), redsync.WithExpiry(5*time.Second))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("layout: lock %q: %w", name, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()
	return fn()
}

// Save stores l under its name while holding the layout's lock.
func (r *RedisStore) Save(ctx context.Context, l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	l.SavedAt = r.now().UTC()
	data, err := Marshal(l)
	if err != nil {
		return err
	}

	return r.withLock(ctx, l.Name, func() error {
		_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, r.layoutKey(l.Name), data, 0)
			p.SAdd(ctx, r.indexKey(), l.Name)
			return nil
		})
		return err
	})
}

// Load returns the layout stored under name, or ErrNotFound.
func (r *RedisStore) Load(ctx context.Context, name string) (Layout, error) {
	if err := ValidateName(name); err != nil {
		return Layout{}, err
	}
	data, err := r.client.Get(ctx, r.layoutKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Layout{}, ErrNotFound
	}
	if err != nil {
		return Layout{}, err
	}
	return Unmarshal(data)
}

// List returns the stored layout names in sorted order.
func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the layout stored under name, or returns ErrNotFound.
func (r *RedisStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return r.withLock(ctx, name, func() error {
		var del *redis.IntCmd
		_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			del = p.Del(ctx, r.layoutKey(name))
			p.SRem(ctx, r.indexKey(), name)
			return nil
		})
		if err != nil {
			return err
		}
		if del.Val() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
