package economy

import (
	"errors"
	"testing"
)

func TestOfferBookSingleOfferPerBorrower(t *testing.T) {
	book := newOfferBook()
	first := LoanOffer{LenderID: "lender-a", BorrowerID: "borrower", Amount: 500, InterestPct: 10, Days: 7}
	if err := book.put(first); err != nil {
		t.Fatalf("first offer rejected: %v", err)
	}

	second := LoanOffer{LenderID: "lender-b", BorrowerID: "borrower", Amount: 900, InterestPct: 5, Days: 3}
	if err := book.put(second); !errors.Is(err, ErrOfferPending) {
		t.Fatalf("second offer expected ErrOfferPending, got %v", err)
	}

	// A different borrower is unaffected.
	other := LoanOffer{LenderID: "lender-b", BorrowerID: "other", Amount: 900, InterestPct: 5, Days: 3}
	if err := book.put(other); err != nil {
		t.Fatalf("offer to another borrower rejected: %v", err)
	}
}

func TestOfferBookTakeConsumes(t *testing.T) {
	book := newOfferBook()
	offer := LoanOffer{LenderID: "lender", BorrowerID: "borrower", Amount: 250, InterestPct: 0, Days: 1}
	if err := book.put(offer); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := book.peek("borrower")
	if !ok || got != offer {
		t.Fatalf("peek = (%+v, %v)", got, ok)
	}

	taken, err := book.take("borrower")
	if err != nil || taken != offer {
		t.Fatalf("take = (%+v, %v)", taken, err)
	}
	if _, err := book.take("borrower"); !errors.Is(err, ErrNoPendingOffer) {
		t.Fatalf("second take expected ErrNoPendingOffer, got %v", err)
	}
	if _, ok := book.peek("borrower"); ok {
		t.Fatalf("peek after take should miss")
	}

	// The slot is free again.
	if err := book.put(offer); err != nil {
		t.Fatalf("re-offer after take rejected: %v", err)
	}
}

func TestValidateLoanTerms(t *testing.T) {
	if err := validateLoanTerms(500, 10, 7); err != nil {
		t.Fatalf("valid terms rejected: %v", err)
	}
	if err := validateLoanTerms(500, 0, 1); err != nil {
		t.Fatalf("zero interest is a valid term: %v", err)
	}

	bad := []struct {
		amount   int64
		interest float64
		days     int
	}{
		{0, 10, 7},
		{-100, 10, 7},
		{500, -1, 7},
		{500, 10, 0},
	}
	for _, tc := range bad {
		if err := validateLoanTerms(tc.amount, tc.interest, tc.days); !errors.Is(err, ErrInvalidBet) {
			t.Fatalf("terms (%d, %v, %d) expected ErrInvalidBet, got %v", tc.amount, tc.interest, tc.days, err)
		}
	}
}

func TestLoanAcceptRepayRoundTrip(t *testing.T) {
	const (
		lenderStart   = int64(10_000)
		borrowerStart = int64(500)
		principal     = int64(2_000)
		interestPct   = 10.0
	)
	if err := validateLoanTerms(principal, interestPct, 7); err != nil {
		t.Fatalf("terms: %v", err)
	}

	// Accept moves the principal lender to borrower.
	lender, borrower, err := moveFunds(lenderStart, borrowerStart, principal)
	if err != nil {
		t.Fatalf("accept leg: %v", err)
	}
	if lender != lenderStart-principal || borrower != borrowerStart+principal {
		t.Fatalf("after accept: lender=%d borrower=%d", lender, borrower)
	}

	// Repay moves principal plus interest back the other way.
	owed := Loan{Principal: principal, InterestPct: interestPct}.TotalOwed()
	borrower, lender, err = moveFunds(borrower, lender, owed)
	if err != nil {
		t.Fatalf("repay leg: %v", err)
	}
	interest := owed - principal
	if lender != lenderStart+interest {
		t.Fatalf("lender ends at %d, want start plus %d interest", lender, interest)
	}
	if borrower != borrowerStart-interest {
		t.Fatalf("borrower ends at %d, want start minus %d interest", borrower, interest)
	}
}

func TestMoveFundsFloor(t *testing.T) {
	from, to, err := moveFunds(100, 0, 101)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if from != 100 || to != 0 {
		t.Fatalf("balances changed on rejected move: from=%d to=%d", from, to)
	}

	// Exactly the balance drains it to zero.
	from, to, err = moveFunds(100, 0, 100)
	if err != nil || from != 0 || to != 100 {
		t.Fatalf("exact-balance move = (%d, %d, %v)", from, to, err)
	}
}

func TestAccountJobTitle(t *testing.T) {
	unemployed := Account{JobTier: 0, JobRank: 0}
	if unemployed.Employed() {
		t.Fatalf("tier 0 should be unemployed")
	}
	if got := unemployed.JobTitle(); got != "None" {
		t.Fatalf("unemployed title = %q", got)
	}

	worker := Account{JobTier: 1, JobRank: 1}
	if !worker.Employed() {
		t.Fatalf("tier 1 should be employed")
	}
	if got := worker.JobTitle(); got != Jobs[1][1].Title {
		t.Fatalf("title = %q, want %q", got, Jobs[1][1].Title)
	}

	corrupt := Account{JobTier: 99, JobRank: 0}
	if got := corrupt.JobTitle(); got != "None" {
		t.Fatalf("out-of-range tier title = %q, want None", got)
	}
}
