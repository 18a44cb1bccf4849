package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	strs "github.com/goliatone/go-strings"
)

var (
	ErrFailedToParseRedisURL = errors.New("catalog: failed to parse redis connection string")
	ErrRedisNotReady         = errors.New("catalog: redis did not become ready within the given time period")
)

// DefaultRedisPrefix is prepended to every key a RedisStore writes.
const DefaultRedisPrefix = "strings"

// RedisClient is the subset of redis.Cmdable the store uses. *redis.Client
// and *redis.ClusterClient satisfy it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisConfig configures Connect. Fields are read from the environment with
// caarlos0/env.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"strings"`
	TTL            time.Duration `env:"REDIS_TTL" envDefault:"0s"`
}

// Connect parses cfg.ConnectionURL and pings the server, retrying up to
// cfg.RetryAttempts times.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrRedisNotReady
}

// RedisStore keeps each table as a JSON envelope under
// <prefix>:<domain>:<locale>.
type RedisStore struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix replaces DefaultRedisPrefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL expires saved tables after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

func NewRedisStore(client RedisClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

type redisEnvelope struct {
	Meta    Meta       `json:"meta"`
	Strings strs.Value `json:"strings"`
}

// Key returns the redis key for ref.
func (s *RedisStore) Key(ref Ref) (string, error) {
	if _, err := ref.Identifier(); err != nil {
		return "", err
	}
	return s.prefix + ":" + strings.TrimSpace(ref.Domain) + ":" + NormalizeLocale(ref.Locale), nil
}

func (s *RedisStore) Load(ctx context.Context, ref Ref) (strs.Value, Meta, bool, error) {
	key, err := s.Key(ref)
	if err != nil {
		return strs.Value{}, Meta{}, false, err
	}
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return strs.Value{}, Meta{}, false, nil
	}
	if err != nil {
		return strs.Value{}, Meta{}, false, fmt.Errorf("catalog: redis get %s: %w", key, err)
	}

	var envelope redisEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return strs.Value{}, Meta{}, false, fmt.Errorf("catalog: decode %s: %w", key, err)
	}
	return envelope.Strings, envelope.Meta, true, nil
}

func (s *RedisStore) Save(ctx context.Context, ref Ref, table strs.Value, meta Meta) (Meta, error) {
	key, err := s.Key(ref)
	if err != nil {
		return Meta{}, err
	}
	out := stamp(meta, table)
	payload, err := json.Marshal(redisEnvelope{Meta: out, Strings: table})
	if err != nil {
		return Meta{}, fmt.Errorf("catalog: encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return Meta{}, fmt.Errorf("catalog: redis set %s: %w", key, err)
	}
	return out, nil
}
