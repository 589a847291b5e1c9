package economy

import "time"

type Account struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	JobTier       int       `json:"job_tier"`
	JobRank       int       `json:"job_rank"`
	Balance       int64     `json:"balance"`
	TimesWorked   int       `json:"times_worked"`
	LastWorkAt    time.Time `json:"last_work_at"`
	LastPassiveAt time.Time `json:"last_passive_at"`
}

// JobTitle resolves the catalog title for the account's (tier, rank).
func (a Account) JobTitle() string {
	if a.JobTier <= 0 || a.JobTier >= len(Jobs) {
		return "None"
	}
	ranks := Jobs[a.JobTier]
	if a.JobRank < 0 || a.JobRank >= len(ranks) {
		return "None"
	}
	return ranks[a.JobRank].Title
}

func (a Account) Employed() bool {
	return a.JobTier != 0
}

type OwnedAsset struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	HourlyIncome int64  `json:"hourly_income,omitempty"`
}

type InventoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ActiveEffect struct {
	Kind      EffectKind `json:"kind"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type Profile struct {
	Account         Account         `json:"account"`
	JobTitle        string          `json:"job_title"`
	Houses          []OwnedAsset    `json:"houses"`
	Businesses      []OwnedAsset    `json:"businesses"`
	IllegalHoldings []OwnedAsset    `json:"illegal_businesses"`
	Inventory       []InventoryItem `json:"inventory"`
	PassiveHourly   int64           `json:"passive_hourly"`
	ActiveEffects   []ActiveEffect  `json:"active_effects"`
}

type LeaderboardRow struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type WorkResult struct {
	HoursWorked int   `json:"hours_worked"`
	Payout      int64 `json:"payout"`
	NewBalance  int64 `json:"new_balance"`
}

type PromoteResult struct {
	Promoted  bool   `json:"promoted"`
	Title     string `json:"title"`
	Remaining int    `json:"remaining,omitempty"`
}

type PassiveResult struct {
	Hours      int      `json:"hours"`
	Income     int64    `json:"income"`
	Drugs      []string `json:"drugs,omitempty"`
	NewBalance int64    `json:"new_balance"`
}

type PurchaseResult struct {
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	NewBalance int64  `json:"new_balance"`
}

type TransferResult struct {
	Amount        int64  `json:"amount"`
	RecipientName string `json:"recipient_name"`
	NewBalance    int64  `json:"new_balance"`
}

type UseResult struct {
	Drug      string    `json:"drug"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoanOffer struct {
	LenderID    string
	BorrowerID  string
	Amount      int64
	InterestPct float64
	Days        int
	MessageID   string
}

type Loan struct {
	ID           int64     `json:"id"`
	LenderID     string    `json:"lender_id"`
	LenderName   string    `json:"lender_name,omitempty"`
	BorrowerID   string    `json:"borrower_id"`
	BorrowerName string    `json:"borrower_name,omitempty"`
	Principal    int64     `json:"principal"`
	InterestPct  float64   `json:"interest_pct"`
	DueAt        time.Time `json:"due_at"`
	Paid         bool      `json:"paid"`
}

// TotalOwed is what the borrower must repay.
func (l Loan) TotalOwed() int64 {
	return LoanTotalOwed(l.Principal, l.InterestPct)
}
