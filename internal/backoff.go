package internal

import "time"

type BackoffFlags uint8

const (
	BackoffHasPriority BackoffFlags = 1 << iota
	BackoffCriticalPath
	BackoffRegister
)

const backoffMinWait = time.Microsecond

func backoffMaxWait(priority BackoffFlags) time.Duration {
	switch {
	case priority&BackoffCriticalPath != 0:
		return 1 * time.Millisecond
	case priority&BackoffRegister != 0:
		return 100 * time.Microsecond
	default:
		return time.Second >> (priority & BackoffHasPriority)
	}
}

func NewBackoff(priority BackoffFlags) Backoff {
	return Backoff{
		wait:      uint32(backoffMinWait),
		maxWait:   uint32(backoffMaxWait(priority)),
		startWait: uint32(backoffMinWait),
	}
}

// A Backoff with a non-zero MaxWait is ready for use.
type Backoff struct {
	// wait defines the amount of time that Miss will wait on next call.
	wait uint32
	// Maximum allowable value for Wait.
	maxWait uint32
	// startWait is the intial Wait value, as well as the value that Wait takes after a call to Hit.
	startWait uint32
}

// Hit sets eb.Wait to the StartWait value.
func (eb *Backoff) Hit() {
	if eb.maxWait == 0 {
		panic("MaxWait cannot be zero")
	}
	eb.wait = eb.startWait
}

// Miss sleeps for eb.Wait and increases eb.Wait exponentially.
func (eb *Backoff) Miss() {
	if eb.maxWait == 0 {
		panic("MaxWait cannot be zero")
	}
	time.Sleep(time.Duration(eb.wait))
	eb.wait *= 2
	if eb.wait > eb.maxWait {
		eb.wait = eb.maxWait
	}
}

// PollUntil calls done until it returns true or timeout elapses, backing off
// between calls. done is always called at least once and once more after the
// deadline passes so a condition met during the last sleep is not missed.
// Returns false on timeout.
func PollUntil(timeout time.Duration, flags BackoffFlags, done func() bool) bool {
	if done() {
		return true
	}
	deadline := time.Now().Add(timeout)
	backoff := NewBackoff(flags)
	for time.Now().Before(deadline) {
		backoff.Miss()
		if done() {
			return true
		}
	}
	return done()
}
