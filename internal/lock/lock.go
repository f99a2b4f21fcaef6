package lock

import (
	"context"
	"errors"
	"time"
)

// ErrLockHeld is returned when the keyed lock is already taken by another
// request or instance.
var ErrLockHeld = errors.New("lock already held")

// Locker serializes a critical section per key. The form engine wraps the
// submission check-then-insert sequence in one of these so two concurrent
// submissions for the same (program, registrant) pair cannot both pass the
// duplicate checks.
type Locker interface {
	// Acquire takes the lock for key, returning a release func. The TTL
	// bounds how long a crashed holder can block others.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
