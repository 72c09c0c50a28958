package page

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces page sessions in a shared cache.
const KeyPrefix = "resume-web:page:"

// CacheRepo stores page sessions as JSON in an ecache.Cache.
type CacheRepo struct {
	cache ecache.Cache
	ttl   time.Duration
}

func NewCacheRepo(c ecache.Cache, ttl time.Duration) *CacheRepo {
	return &CacheRepo{
		cache: &ecache.NamespaceCache{C: c, Namespace: KeyPrefix},
		ttl:   ttl,
	}
}

// NewRedisRepo connects a CacheRepo to redis.
func NewRedisRepo(addr, password string, db int, ttl time.Duration) *CacheRepo {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewCacheRepo(eredis.NewCache(client), ttl)
}

func (r *CacheRepo) Get(ctx context.Context, id string) (*State, error) {
	val := r.cache.Get(ctx, id)
	if val.KeyNotFound() {
		return nil, ErrNotFound
	}
	if val.Err != nil {
		return nil, errors.Wrap(val.Err, "page cache get")
	}
	raw, ok := val.Val.(string)
	if !ok {
		return nil, errors.Errorf("page cache: unexpected value %T", val.Val)
	}
	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, errors.Wrap(err, "page cache unmarshal")
	}
	return &st, nil
}

func (r *CacheRepo) Save(ctx context.Context, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "page cache marshal")
	}
	return errors.Wrap(r.cache.Set(ctx, st.ID, string(data), r.ttl), "page cache set")
}

func (r *CacheRepo) Delete(ctx context.Context, id string) error {
	_, err := r.cache.Delete(ctx, id)
	return errors.Wrap(err, "page cache delete")
}
