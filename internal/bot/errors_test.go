package bot

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Leo-Carroll/EconBot/internal/casino"
	"github.com/Leo-Carroll/EconBot/internal/economy"
)

func TestDomainMessageMapsSentinels(t *testing.T) {
	if got := domainMessage(economy.ErrInsufficientFunds); got != "You do not have enough money for that!" {
		t.Fatalf("got %q", got)
	}
	if got := domainMessage(casino.ErrGameActive); got != "Finish your current game first!" {
		t.Fatalf("got %q", got)
	}

	// Wrapped errors still map.
	wrapped := fmt.Errorf("use: %w", economy.ErrNothingToUse)
	if got := domainMessage(wrapped); got != "You don't have any of that!" {
		t.Fatalf("wrapped error got %q", got)
	}
}

func TestDomainMessageCooldownKeepsRemainingTime(t *testing.T) {
	err := fmt.Errorf("work: %w", &economy.CooldownError{Remaining: 12 * time.Minute})
	if !errors.Is(err, economy.ErrCooldownActive) {
		t.Fatalf("cooldown error lost its sentinel")
	}
	if got, want := domainMessage(err), "You need to wait 12 more minutes."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	// The minute count rounds up, so a few seconds still reads as a minute.
	if got, want := domainMessage(&economy.CooldownError{Remaining: 30 * time.Second}), "You need to wait 1 more minutes."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	// A bare sentinel with no duration falls back to the static line.
	if got := domainMessage(economy.ErrCooldownActive); got != "You are still on cooldown." {
		t.Fatalf("bare sentinel got %q", got)
	}
}

func TestDomainMessageFallback(t *testing.T) {
	err := errors.New("pq: connection refused")
	if isDomainErr(err) {
		t.Fatalf("infrastructure error misclassified as domain")
	}
	got := domainMessage(err)
	if got == "" || got == err.Error() {
		t.Fatalf("internal errors must not leak, got %q", got)
	}
}

func TestEveryDomainEntryIsClassified(t *testing.T) {
	for _, entry := range domainMessages {
		if !isDomainErr(entry.err) {
			t.Fatalf("%v not classified as domain", entry.err)
		}
		if entry.msg == "" {
			t.Fatalf("%v has empty message", entry.err)
		}
	}
}
