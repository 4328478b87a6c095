package auth

// LockoutPolicy decides lock-state transitions from login outcomes. The
// transitions are pure value functions; persisting the result is the
// caller's job. Locks are set automatically on reaching the threshold but
// cleared only by an explicit unlock, so an attacker can never clear one
// by waiting out failed attempts.
type LockoutPolicy struct {
	Threshold int
}

const DefaultLockoutThreshold = 3

func NewLockoutPolicy(threshold int) LockoutPolicy {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	return LockoutPolicy{Threshold: threshold}
}

// OnFailedAttempt increments the counter and sets the lock in the same
// transition once the threshold is reached.
func (p LockoutPolicy) OnFailedAttempt(u User) User {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= p.Threshold {
		u.IsLocked = true
	}
	return u
}

// OnSuccess resets the counter. The lock is left untouched: a correct
// password never clears it.
func (p LockoutPolicy) OnSuccess(u User) User {
	u.FailedLoginAttempts = 0
	return u
}

// Unlock clears the lock and the counter. Idempotent.
func (p LockoutPolicy) Unlock(u User) User {
	u.IsLocked = false
	u.FailedLoginAttempts = 0
	return u
}

// Activate re-enables a deactivated account. Activation implicitly unlocks.
func (p LockoutPolicy) Activate(u User) User {
	u.IsActive = true
	return p.Unlock(u)
}

func (p LockoutPolicy) Deactivate(u User) User {
	u.IsActive = false
	return u
}
