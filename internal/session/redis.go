package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session in a Redis hash so several dashboard
// instances share one sign-in. The hash expires with the access token.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects using a redis:// URL and verifies the connection.
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStoreFromClient(client, prefix), nil
}

func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cpmsdash"
	}
	return &RedisStore{client: client, key: prefix + ":session"}
}

func (r *RedisStore) Load(ctx context.Context) (Session, error) {
	vals, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if vals[KeyAccessToken] == "" {
		return Session{}, ErrNoSession
	}
	s := Session{
		AccessToken:  vals[KeyAccessToken],
		RefreshToken: vals[KeyRefreshToken],
		TokenType:    vals[KeyTokenType],
	}
	if v := vals[KeyExpiresIn]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.ExpiresIn = n
		}
	}
	if v := vals[KeyChargerInfo]; v != "" {
		var ci ChargerInfo
		// a malformed value is treated as absent
		if err := json.Unmarshal([]byte(v), &ci); err == nil {
			s.ChargerInfo = &ci
		}
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	fields := map[string]any{
		KeyAccessToken: s.AccessToken,
		KeyTokenType:   s.TokenType,
		KeyExpiresIn:   strconv.Itoa(s.ExpiresIn),
	}
	if s.RefreshToken != "" {
		fields[KeyRefreshToken] = s.RefreshToken
	}
	if s.ChargerInfo != nil {
		b, err := json.Marshal(s.ChargerInfo)
		if err != nil {
			return fmt.Errorf("encode charger info: %w", err)
		}
		fields[KeyChargerInfo] = string(b)
	}

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.key)
		p.HSet(ctx, r.key, fields)
		if ttl := s.TTL(); ttl > 0 {
			p.Expire(ctx, r.key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
