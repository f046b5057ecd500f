package internal

import (
	"testing"
	"time"
)

func TestPollUntil(t *testing.T) {
	calls := 0
	ok := PollUntil(time.Second, BackoffRegister, func() bool {
		calls++
		return calls == 3
	})
	if !ok {
		t.Fatal("expected condition to be met")
	} else if calls != 3 {
		t.Errorf("got %d calls; want 3", calls)
	}

	start := time.Now()
	ok = PollUntil(5*time.Millisecond, BackoffCriticalPath, func() bool { return false })
	if ok {
		t.Fatal("expected timeout")
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("returned before timeout: %s", elapsed)
	}
}

func TestBackoffMaxWait(t *testing.T) {
	b := NewBackoff(BackoffRegister)
	for i := 0; i < 16; i++ {
		b.Miss()
	}
	if time.Duration(b.wait) != 100*time.Microsecond {
		t.Errorf("wait not capped: %s", time.Duration(b.wait))
	}
	b.Hit()
	if time.Duration(b.wait) != backoffMinWait {
		t.Errorf("Hit did not reset wait: %s", time.Duration(b.wait))
	}
}
