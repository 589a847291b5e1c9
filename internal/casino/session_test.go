package casino

import (
	"errors"
	"sync"
	"testing"
)

func TestRegistryOneSessionPerKind(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Begin("alice", KindBlackjack); err != nil {
		t.Fatalf("first begin: %v", err)
	}
	if _, err := reg.Begin("alice", KindBlackjack); !errors.Is(err, ErrGameActive) {
		t.Fatalf("duplicate begin expected ErrGameActive, got %v", err)
	}

	// A different kind for the same user is its own slot.
	if _, err := reg.Begin("alice", KindRoulette); err != nil {
		t.Fatalf("different kind rejected: %v", err)
	}
	// And a different user is unaffected.
	if _, err := reg.Begin("bob", KindBlackjack); err != nil {
		t.Fatalf("different user rejected: %v", err)
	}
	if reg.Active() != 3 {
		t.Fatalf("active = %d, want 3", reg.Active())
	}
}

func TestRegistryResolveFreesSlot(t *testing.T) {
	reg := NewRegistry()
	sess, err := reg.Begin("alice", KindCoinflip)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	sess.Wager = 500

	got, err := reg.Get("alice", KindCoinflip)
	if err != nil || got != sess {
		t.Fatalf("get = (%p, %v), want %p", got, err, sess)
	}

	reg.Resolve("alice", KindCoinflip)
	if _, err := reg.Get("alice", KindCoinflip); !errors.Is(err, ErrNoSession) {
		t.Fatalf("get after resolve expected ErrNoSession, got %v", err)
	}
	// Resolving twice is harmless.
	reg.Resolve("alice", KindCoinflip)

	if _, err := reg.Begin("alice", KindCoinflip); err != nil {
		t.Fatalf("begin after resolve rejected: %v", err)
	}
}

func TestRegistryConcurrentBeginAdmitsOne(t *testing.T) {
	reg := NewRegistry()
	const attempts = 50
	var wg sync.WaitGroup
	admitted := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Begin("alice", KindSlots); err == nil {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for range admitted {
		count++
	}
	if count != 1 {
		t.Fatalf("admitted %d sessions, want exactly 1", count)
	}
}
