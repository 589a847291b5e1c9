package economy

import (
	"errors"
	"testing"
	"time"
)

func TestParseBet(t *testing.T) {
	tests := []struct {
		arg  string
		want BetAmount
	}{
		{arg: "all", want: BetAmount{All: true}},
		{arg: "ALL", want: BetAmount{All: true}},
		{arg: "100", want: BetAmount{Value: 100}},
		{arg: "1", want: BetAmount{Value: 1}},
	}
	for _, tc := range tests {
		got, err := ParseBet(tc.arg)
		if err != nil {
			t.Fatalf("ParseBet(%q) unexpected error: %v", tc.arg, err)
		}
		if got != tc.want {
			t.Fatalf("ParseBet(%q) = %+v, want %+v", tc.arg, got, tc.want)
		}
	}

	invalid := []string{"0", "-5", "abc", "", "12.5"}
	for _, arg := range invalid {
		if _, err := ParseBet(arg); !errors.Is(err, ErrInvalidBet) {
			t.Fatalf("ParseBet(%q) expected ErrInvalidBet, got %v", arg, err)
		}
	}
}

func TestBetResolve(t *testing.T) {
	tests := []struct {
		bet     BetAmount
		balance int64
		want    int64
	}{
		{bet: BetAmount{Value: 100}, balance: 500, want: 100},
		{bet: BetAmount{Value: 500}, balance: 500, want: 500},
		{bet: BetAmount{All: true}, balance: 500, want: 500},
		{bet: BetAmount{All: true}, balance: 1, want: 1},
	}
	for _, tc := range tests {
		got, err := tc.bet.Resolve(tc.balance)
		if err != nil {
			t.Fatalf("Resolve(%+v, %d) unexpected error: %v", tc.bet, tc.balance, err)
		}
		if got != tc.want {
			t.Fatalf("Resolve(%+v, %d) = %d, want %d", tc.bet, tc.balance, got, tc.want)
		}
	}

	// One over the balance overdraws.
	if _, err := (BetAmount{Value: 501}).Resolve(500); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	// A broke player cannot bet "all", and zero-value bets never pass.
	if _, err := (BetAmount{All: true}).Resolve(0); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet for all-on-zero, got %v", err)
	}
	if _, err := (BetAmount{}).Resolve(500); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet for zero bet, got %v", err)
	}
}

func TestCooldownError(t *testing.T) {
	err := &CooldownError{Remaining: 11*time.Minute + 30*time.Second}
	if !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("CooldownError must match ErrCooldownActive")
	}
	if got := err.Minutes(); got != 12 {
		t.Fatalf("Minutes() = %d, want 12 (rounds up)", got)
	}
	if got := (&CooldownError{Remaining: 5 * time.Second}).Minutes(); got != 1 {
		t.Fatalf("Minutes() = %d, want 1 (floor of one minute)", got)
	}
}

func TestLoanTotalOwed(t *testing.T) {
	tests := []struct {
		principal int64
		interest  float64
		want      int64
	}{
		{principal: 1000, interest: 10, want: 1100},
		{principal: 1000, interest: 0, want: 1000},
		{principal: 1000, interest: 12.5, want: 1125},
		{principal: 999, interest: 10, want: 1098},
		{principal: 1, interest: 50, want: 1},
	}
	for _, tc := range tests {
		got := LoanTotalOwed(tc.principal, tc.interest)
		if got != tc.want {
			t.Fatalf("LoanTotalOwed(%d, %v) = %d, want %d", tc.principal, tc.interest, got, tc.want)
		}
	}
}

func TestLoanTotalOwedMethod(t *testing.T) {
	l := Loan{Principal: 2000, InterestPct: 25}
	if got := l.TotalOwed(); got != 2500 {
		t.Fatalf("TotalOwed() = %d, want 2500", got)
	}
}
