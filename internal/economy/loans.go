package economy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// offerBook holds in-flight loan offers, one per borrower. Offers live in
// memory only; a restart clears them, which is fine since nothing was moved
// until acceptance.
type offerBook struct {
	mu      sync.Mutex
	pending map[string]LoanOffer
}

func newOfferBook() offerBook {
	return offerBook{pending: make(map[string]LoanOffer)}
}

func (b *offerBook) put(offer LoanOffer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.pending[offer.BorrowerID]; exists {
		return ErrOfferPending
	}
	b.pending[offer.BorrowerID] = offer
	return nil
}

func (b *offerBook) take(borrowerID string) (LoanOffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	offer, exists := b.pending[borrowerID]
	if !exists {
		return LoanOffer{}, ErrNoPendingOffer
	}
	delete(b.pending, borrowerID)
	return offer, nil
}

func (b *offerBook) peek(borrowerID string) (LoanOffer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	offer, exists := b.pending[borrowerID]
	return offer, exists
}

// validateLoanTerms rejects malformed offer parameters before anything is
// recorded.
func validateLoanTerms(amount int64, interestPct float64, days int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidBet)
	}
	if interestPct < 0 {
		return fmt.Errorf("%w: interest cannot be negative", ErrInvalidBet)
	}
	if days < 1 {
		return fmt.Errorf("%w: term must be at least one day", ErrInvalidBet)
	}
	return nil
}

// moveFunds shifts amount from one balance to the other, enforcing the
// payer's floor. On error both balances come back unchanged.
func moveFunds(from, to, amount int64) (int64, int64, error) {
	if amount > from {
		return from, to, ErrInsufficientFunds
	}
	return from - amount, to + amount, nil
}

// OfferLoan records a pending offer from lender to borrower. Funds do not
// move until the borrower accepts.
func (s *Service) OfferLoan(ctx context.Context, lenderID, borrowerID string, amount int64, interestPct float64, days int) (LoanOffer, error) {
	var offer LoanOffer
	if lenderID == borrowerID {
		return offer, ErrSelfTransfer
	}
	if err := validateLoanTerms(amount, interestPct, days); err != nil {
		return offer, err
	}
	if err := s.EnsureAccount(ctx, lenderID, ""); err != nil {
		return offer, err
	}
	lender, err := s.readAccount(ctx, lenderID)
	if err != nil {
		return offer, err
	}
	if lender.Balance < amount {
		return offer, ErrInsufficientFunds
	}
	offer = LoanOffer{
		LenderID:    lenderID,
		BorrowerID:  borrowerID,
		Amount:      amount,
		InterestPct: interestPct,
		Days:        days,
	}
	if err := s.offers.put(offer); err != nil {
		return LoanOffer{}, err
	}
	return offer, nil
}

// PendingOffer reports the offer currently awaiting this borrower, if any.
func (s *Service) PendingOffer(borrowerID string) (LoanOffer, bool) {
	return s.offers.peek(borrowerID)
}

// AcceptLoan consumes the pending offer, re-checks the lender can still fund
// it, and moves the principal. The offer is gone either way.
func (s *Service) AcceptLoan(ctx context.Context, borrowerID string) (Loan, error) {
	var out Loan
	offer, err := s.offers.take(borrowerID)
	if err != nil {
		return out, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	lender, borrower, err := lockPair(ctx, tx, offer.LenderID, offer.BorrowerID)
	if err != nil {
		return out, err
	}
	lenderBal, borrowerBal, err := moveFunds(lender.Balance, borrower.Balance, offer.Amount)
	if err != nil {
		return out, fmt.Errorf("lender can no longer fund this loan: %w", err)
	}
	if err := setBalance(ctx, tx, offer.LenderID, lenderBal); err != nil {
		return out, err
	}
	if err := setBalance(ctx, tx, offer.BorrowerID, borrowerBal); err != nil {
		return out, err
	}

	dueAt := time.Now().Add(time.Duration(offer.Days) * 24 * time.Hour)
	var loanID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO econ.loans (lender_id, borrower_id, principal, interest_pct, due_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, offer.LenderID, offer.BorrowerID, offer.Amount, offer.InterestPct, dueAt).Scan(&loanID); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, offer.LenderID, "loan_out", -offer.Amount); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, offer.BorrowerID, "loan_in", offer.Amount); err != nil {
		return out, err
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	return Loan{
		ID:          loanID,
		LenderID:    offer.LenderID,
		LenderName:  lender.Name,
		BorrowerID:  offer.BorrowerID,
		Principal:   offer.Amount,
		InterestPct: offer.InterestPct,
		DueAt:       dueAt,
	}, nil
}

// DeclineLoan discards the pending offer without moving anything.
func (s *Service) DeclineLoan(borrowerID string) (LoanOffer, error) {
	return s.offers.take(borrowerID)
}

// RepayLoan settles an open loan in full, principal plus interest.
func (s *Service) RepayLoan(ctx context.Context, borrowerID string, loanID int64) (Loan, error) {
	var out Loan
	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	var loan Loan
	err = tx.QueryRow(ctx, `
		SELECT id, lender_id, borrower_id, principal, interest_pct, due_at, paid
		FROM econ.loans
		WHERE id = $1 AND borrower_id = $2
		FOR UPDATE
	`, loanID, borrowerID).Scan(&loan.ID, &loan.LenderID, &loan.BorrowerID, &loan.Principal, &loan.InterestPct, &loan.DueAt, &loan.Paid)
	if err == pgx.ErrNoRows {
		return out, ErrLoanNotFound
	}
	if err != nil {
		return out, err
	}
	if loan.Paid {
		return out, ErrLoanPaid
	}

	total := loan.TotalOwed()
	lender, borrower, err := lockPair(ctx, tx, loan.LenderID, loan.BorrowerID)
	if err != nil {
		return out, err
	}
	borrowerBal, lenderBal, err := moveFunds(borrower.Balance, lender.Balance, total)
	if err != nil {
		return out, err
	}
	if err := setBalance(ctx, tx, loan.BorrowerID, borrowerBal); err != nil {
		return out, err
	}
	if err := setBalance(ctx, tx, loan.LenderID, lenderBal); err != nil {
		return out, err
	}
	if _, err := tx.Exec(ctx, `UPDATE econ.loans SET paid = TRUE WHERE id = $1`, loan.ID); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, loan.BorrowerID, "loan_repay_out", -total); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, loan.LenderID, "loan_repay_in", total); err != nil {
		return out, err
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	loan.Paid = true
	loan.LenderName = lender.Name
	loan.BorrowerName = borrower.Name
	return loan, nil
}

// LoansGiven lists open loans where the user is the lender.
func (s *Service) LoansGiven(ctx context.Context, lenderID string) ([]Loan, error) {
	return s.queryLoans(ctx, `
		SELECT l.id, l.lender_id, lender.name, l.borrower_id, borrower.name,
		       l.principal, l.interest_pct, l.due_at, l.paid
		FROM econ.loans l
		JOIN econ.accounts lender ON lender.id = l.lender_id
		JOIN econ.accounts borrower ON borrower.id = l.borrower_id
		WHERE l.lender_id = $1 AND NOT l.paid
		ORDER BY l.due_at
	`, lenderID)
}

// LoansOwed lists open loans where the user is the borrower.
func (s *Service) LoansOwed(ctx context.Context, borrowerID string) ([]Loan, error) {
	return s.queryLoans(ctx, `
		SELECT l.id, l.lender_id, lender.name, l.borrower_id, borrower.name,
		       l.principal, l.interest_pct, l.due_at, l.paid
		FROM econ.loans l
		JOIN econ.accounts lender ON lender.id = l.lender_id
		JOIN econ.accounts borrower ON borrower.id = l.borrower_id
		WHERE l.borrower_id = $1 AND NOT l.paid
		ORDER BY l.due_at
	`, borrowerID)
}

func (s *Service) queryLoans(ctx context.Context, sql, arg string) ([]Loan, error) {
	rows, err := s.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.LenderID, &l.LenderName, &l.BorrowerID, &l.BorrowerName,
			&l.Principal, &l.InterestPct, &l.DueAt, &l.Paid); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
