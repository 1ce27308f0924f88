package market

import (
	"sync"
	"time"
)

// Bounded lock acquisition for mutating operations. Record critical
// sections contain no I/O and no unbounded waits, so a small retry
// budget distinguishes real contention from a stuck writer.
const (
	lockAttempts = 50
	lockBackoff  = 200 * time.Microsecond
)

// tryLockBounded attempts to take mu, backing off between attempts.
// Returns false once the retry budget is exhausted.
func tryLockBounded(mu *sync.RWMutex) bool {
	for i := 0; i < lockAttempts; i++ {
		if mu.TryLock() {
			return true
		}
		time.Sleep(lockBackoff)
	}
	return false
}
