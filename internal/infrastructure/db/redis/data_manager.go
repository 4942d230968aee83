package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

const defaultKeyPrefix = "store"

// DataManager keeps each entity kind in a single hash keyed by the entity key.
// Key format: <prefix>:<kind>, field <id>, value JSON.
// Every operation is one hash command, which Redis executes atomically.
type DataManager struct {
	client *redis.Client
	prefix string
}

var _ ports.DataManager = (*DataManager)(nil)

func New(client *redis.Client, prefix string) *DataManager {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &DataManager{client: client, prefix: prefix}
}

func (d *DataManager) Name() string { return "redis" }

func (d *DataManager) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return d.client.Ping(ctx).Err()
}

func (d *DataManager) Close() error {
	return d.client.Close()
}

func (d *DataManager) key(kind string) string {
	return d.prefix + ":" + kind
}

// userRecord keeps the password hash, which domain.User hides from JSON.
type userRecord struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		Email:     u.Email,
		Password:  u.PasswordHash,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		Email:        r.Email,
		PasswordHash: r.Password,
		Name:         r.Name,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (d *DataManager) hset(ctx context.Context, kind, id string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return d.client.HSet(ctx, d.key(kind), id, b).Err()
}

// hsetnx reports whether the field was written.
func (d *DataManager) hsetnx(ctx context.Context, kind, id string, v any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	return d.client.HSetNX(ctx, d.key(kind), id, b).Result()
}

// replaceScript sets the field only when it already exists.
var replaceScript = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 1 then
	redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

// hreplace reports whether the field existed and was overwritten.
func (d *DataManager) hreplace(ctx context.Context, kind, id string, v any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	n, err := replaceScript.Run(ctx, d.client, []string{d.key(kind)}, id, string(b)).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func hget[T any](ctx context.Context, d *DataManager, kind, id string) (*T, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := d.client.HGet(ctx, d.key(kind), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	return &v, true, nil
}

// hvals returns every value of the hash ordered by field.
func hvals[T any](ctx context.Context, d *DataManager, kind string) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields, err := d.client.HGetAll(ctx, d.key(kind)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		var v T
		if err := json.Unmarshal([]byte(fields[id]), &v); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", kind, id, err)
		}
		out = append(out, &v)
	}
	return out, nil
}

func (d *DataManager) hexists(ctx context.Context, kind, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return d.client.HExists(ctx, d.key(kind), id).Result()
}

func (d *DataManager) hdel(ctx context.Context, kind, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := d.client.HDel(ctx, d.key(kind), id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
