package economy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("asset already owned")
	ErrCooldownActive    = errors.New("cooldown active")
	ErrNoJob             = errors.New("no job")
	ErrHasJob            = errors.New("already employed")
	ErrNotEntryJob       = errors.New("only an entry-level job can be taken")
	ErrTopRank           = errors.New("already at the top rank")
	ErrNoPassiveIncome   = errors.New("no passive income sources")
	ErrSelfTransfer      = errors.New("cannot send money to yourself")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrShopLocked        = errors.New("illegal market locked")
	ErrItemNotFound      = errors.New("no such item")
	ErrNothingToUse      = errors.New("none of that item in inventory")
	ErrInvalidBet        = errors.New("invalid bet")
	ErrInvalidAsset      = errors.New("unknown asset")
	ErrNotOwned          = errors.New("asset not owned")
	ErrOfferPending      = errors.New("borrower already has a pending loan offer")
	ErrNoPendingOffer    = errors.New("no pending loan offer")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanPaid          = errors.New("loan already paid")
)

// CooldownError rejects an operation that was retried too soon and carries
// how long until it becomes available. It matches ErrCooldownActive under
// errors.Is so callers can branch on the sentinel while replies keep the
// remaining wait.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active: wait %d more minutes", e.Minutes())
}

func (e *CooldownError) Is(target error) bool { return target == ErrCooldownActive }

// Minutes is the remaining wait rounded up to whole minutes, never below 1.
func (e *CooldownError) Minutes() int {
	m := int(math.Ceil(e.Remaining.Minutes()))
	if m < 1 {
		m = 1
	}
	return m
}

// BetAmount is a wager before it is resolved against a balance. All means
// "bet the whole balance", settled inside the debit transaction so a stale
// read cannot overdraw.
type BetAmount struct {
	All   bool
	Value int64
}

func ParseBet(arg string) (BetAmount, error) {
	arg = strings.TrimSpace(arg)
	if strings.EqualFold(arg, "all") {
		return BetAmount{All: true}, nil
	}
	v, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || v <= 0 {
		return BetAmount{}, ErrInvalidBet
	}
	return BetAmount{Value: v}, nil
}

// Resolve settles the wager against a balance. All becomes the whole
// balance; the result must be positive and must not overdraw.
func (b BetAmount) Resolve(balance int64) (int64, error) {
	amount := b.Value
	if b.All {
		amount = balance
	}
	if amount <= 0 {
		return 0, ErrInvalidBet
	}
	if amount > balance {
		return 0, ErrInsufficientFunds
	}
	return amount, nil
}

// LoanTotalOwed is principal plus simple interest, floored.
func LoanTotalOwed(principal int64, interestPct float64) int64 {
	return int64(math.Floor(float64(principal) * (1 + interestPct/100)))
}
