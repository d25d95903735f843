// Package leaselock implements a lease-style distributed lock on Redis.
//
// A lease is acquired with SET NX and a TTL bounding the maximum hold time.
// Release is token-checked: a holder whose lease already expired (and was
// possibly re-acquired by another process) cannot release the successor's
// lease.
package leaselock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lease:"

// releaseScript deletes the lease key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	client *redis.Client
}

func New(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// Lease is a held lock. Release it at run end, or let the TTL expire.
type Lease struct {
	locker *Locker
	name   string
	token  string
}

// TryAcquire attempts to take the named lease for at most ttl. The second
// return value is false when another holder owns the lease; that is not an
// error.
func (l *Locker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (*Lease, bool, error) {
	token := uuid.New().String()

	acquired, err := l.client.SetNX(ctx, keyPrefix+name, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("lease acquire failed: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	return &Lease{locker: l, name: name, token: token}, true, nil
}

// Release gives up the lease if this holder still owns it. Releasing an
// expired lease is a no-op.
func (le *Lease) Release(ctx context.Context) error {
	err := releaseScript.Run(ctx, le.locker.client, []string{keyPrefix + le.name}, le.token).Err()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("lease release failed: %w", err)
	}
	return nil
}
