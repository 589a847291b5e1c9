package economy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service owns every economic operation. All multi-step mutations run inside
// a transaction that locks the involved account rows FOR UPDATE, which gives
// per-user mutual exclusion released on every exit path.
type Service struct {
	db           *pgxpool.Pool
	log          *slog.Logger
	houseID      string
	workCooldown time.Duration

	mu   sync.Mutex
	rand *mathrand.Rand

	offers offerBook
}

func NewService(db *pgxpool.Pool, logger *slog.Logger, houseID string, workCooldown time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:           db,
		log:          logger,
		houseID:      houseID,
		workCooldown: workCooldown,
		rand:         mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		offers:       newOfferBook(),
	}
}

// HouseID is the designated counterparty for house-edge game legs. It is an
// ordinary account under the same debit rules as everyone else.
func (s *Service) HouseID() string {
	return s.houseID
}

func (s *Service) EnsureAccount(ctx context.Context, id, name string) error {
	if name == "" {
		_, err := s.db.Exec(ctx, `
			INSERT INTO econ.accounts (id) VALUES ($1)
			ON CONFLICT (id) DO NOTHING
		`, id)
		return err
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO econ.accounts (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
	`, id, name)
	return err
}

// Profile is a pure read. Unknown ids get a zero profile rather than a
// lazily created row, so API lookups cannot grow the accounts table.
func (s *Service) Profile(ctx context.Context, id string) (Profile, error) {
	var out Profile
	acct, err := s.readAccount(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		out.Account = Account{ID: id}
		out.JobTitle = out.Account.JobTitle()
		return out, nil
	}
	if err != nil {
		return out, err
	}
	out.Account = acct
	out.JobTitle = acct.JobTitle()

	houseRows, err := s.ownedIndexes(ctx, "econ.houses", id)
	if err != nil {
		return out, err
	}
	for _, idx := range houseRows {
		if idx >= 0 && idx < len(Houses) {
			out.Houses = append(out.Houses, OwnedAsset{Index: idx, Name: Houses[idx].Name, HourlyIncome: Houses[idx].HourlyIncome})
			out.PassiveHourly += Houses[idx].HourlyIncome
		}
	}
	bizRows, err := s.ownedIndexes(ctx, "econ.businesses", id)
	if err != nil {
		return out, err
	}
	for _, idx := range bizRows {
		if idx >= 0 && idx < len(Businesses) {
			out.Businesses = append(out.Businesses, OwnedAsset{Index: idx, Name: Businesses[idx].Name, HourlyIncome: Businesses[idx].HourlyIncome})
			out.PassiveHourly += Businesses[idx].HourlyIncome
		}
	}
	illegalRows, err := s.ownedIndexes(ctx, "econ.illegal_businesses", id)
	if err != nil {
		return out, err
	}
	for _, idx := range illegalRows {
		if idx >= 0 && idx < len(IllegalBusinesses) {
			out.IllegalHoldings = append(out.IllegalHoldings, OwnedAsset{Index: idx, Name: IllegalBusinesses[idx].Name})
		}
	}

	invRows, err := s.db.Query(ctx, `
		SELECT item, quantity FROM econ.inventory
		WHERE user_id = $1 AND quantity > 0
		ORDER BY item
	`, id)
	if err != nil {
		return out, err
	}
	defer invRows.Close()
	for invRows.Next() {
		var item InventoryItem
		if err := invRows.Scan(&item.Name, &item.Quantity); err != nil {
			return out, err
		}
		out.Inventory = append(out.Inventory, item)
	}
	if err := invRows.Err(); err != nil {
		return out, err
	}

	out.ActiveEffects, err = s.activeEffects(ctx, s.db, id)
	return out, err
}

func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := s.db.Query(ctx, `
		SELECT name, balance FROM econ.accounts
		WHERE id <> $1
		ORDER BY balance DESC
		LIMIT $2
	`, s.houseID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LeaderboardRow
	rank := 1
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Name, &r.Balance); err != nil {
			return nil, err
		}
		r.Rank = rank
		rank++
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Service) Work(ctx context.Context, id string) (WorkResult, error) {
	var out WorkResult
	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, id)
	if err != nil {
		return out, err
	}
	if !acct.Employed() {
		return out, ErrNoJob
	}

	effects, err := s.activeEffects(ctx, tx, id)
	if err != nil {
		return out, err
	}
	cooldown := s.workCooldown - cooldownCut(effects)
	if cooldown < 0 {
		cooldown = 0
	}
	now := time.Now()
	if elapsed := now.Sub(acct.LastWorkAt); elapsed < cooldown {
		return out, &CooldownError{Remaining: cooldown - elapsed}
	}

	hours := s.nextIntn(6) + 3
	pay := Jobs[acct.JobTier][acct.JobRank].HourlyPay
	payout := int64(math.Floor(float64(pay*int64(hours)) * (1 + effectBonus(effects, OpWorkPayout))))

	newBalance := acct.Balance + payout
	if _, err := tx.Exec(ctx, `
		UPDATE econ.accounts
		SET balance = $1, times_worked = times_worked + 1, last_work_at = $2, updated_at = now()
		WHERE id = $3
	`, newBalance, now, id); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, id, "work", payout); err != nil {
		return out, err
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	out = WorkResult{HoursWorked: hours, Payout: payout, NewBalance: newBalance}
	return out, nil
}

func (s *Service) Promote(ctx context.Context, id string) (PromoteResult, error) {
	var out PromoteResult
	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, id)
	if err != nil {
		return out, err
	}
	if !acct.Employed() {
		return out, ErrNoJob
	}
	ranks := Jobs[acct.JobTier]
	threshold, ready, top := nextPromotion(acct.JobTier, acct.JobRank, acct.TimesWorked)
	if top {
		return out, ErrTopRank
	}
	if !ready {
		out.Remaining = threshold - acct.TimesWorked
		out.Title = ranks[acct.JobRank].Title
		return out, nil
	}
	nextRank := acct.JobRank + 1
	if _, err := tx.Exec(ctx, `
		UPDATE econ.accounts
		SET job_rank = $1, times_worked = 0, updated_at = now()
		WHERE id = $2
	`, nextRank, id); err != nil {
		return out, err
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	return PromoteResult{Promoted: true, Title: ranks[nextRank].Title}, nil
}

func (s *Service) GetJob(ctx context.Context, id, jobName string) (string, error) {
	tier := EntryJobTier(jobName)
	if tier < 0 {
		return "", ErrNotEntryJob
	}
	tx, err := s.begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, id)
	if err != nil {
		return "", err
	}
	if acct.Employed() {
		return "", ErrHasJob
	}
	if _, err := tx.Exec(ctx, `
		UPDATE econ.accounts
		SET job_tier = $1, job_rank = 0, times_worked = 0, updated_at = now()
		WHERE id = $2
	`, tier, id); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return Jobs[tier][0].Title, nil
}

func (s *Service) QuitJob(ctx context.Context, id string) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, id)
	if err != nil {
		return err
	}
	if !acct.Employed() {
		return ErrNoJob
	}
	if _, err := tx.Exec(ctx, `
		UPDATE econ.accounts
		SET job_tier = 0, job_rank = 0, times_worked = 0, updated_at = now()
		WHERE id = $1
	`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Service) Passive(ctx context.Context, id string) (PassiveResult, error) {
	var out PassiveResult
	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, id)
	if err != nil {
		return out, err
	}

	houses, err := ownedIndexesTx(ctx, tx, "econ.houses", id)
	if err != nil {
		return out, err
	}
	businesses, err := ownedIndexesTx(ctx, tx, "econ.businesses", id)
	if err != nil {
		return out, err
	}
	illegal, err := ownedIndexesTx(ctx, tx, "econ.illegal_businesses", id)
	if err != nil {
		return out, err
	}
	if len(houses) == 0 && len(businesses) == 0 {
		return out, ErrNoPassiveIncome
	}

	now := time.Now()
	elapsed := now.Sub(acct.LastPassiveAt)
	hours := int(elapsed / time.Hour)
	if hours < 1 {
		return out, &CooldownError{Remaining: time.Hour - elapsed}
	}

	var hourly int64
	for _, idx := range houses {
		if idx >= 0 && idx < len(Houses) {
			hourly += Houses[idx].HourlyIncome
		}
	}
	for _, idx := range businesses {
		if idx >= 0 && idx < len(Businesses) {
			hourly += Businesses[idx].HourlyIncome
		}
	}

	effects, err := s.activeEffects(ctx, tx, id)
	if err != nil {
		return out, err
	}
	income := int64(math.Floor(float64(hourly*int64(hours)) * (1 + effectBonus(effects, OpPassiveIncome))))

	var drugs []string
	for _, idx := range illegal {
		if idx < 0 || idx >= len(IllegalBusinesses) {
			continue
		}
		item := IllegalBusinesses[idx].Produces
		if _, err := tx.Exec(ctx, `
			INSERT INTO econ.inventory (user_id, item, quantity) VALUES ($1, $2, 1)
			ON CONFLICT (user_id, item) DO UPDATE SET quantity = econ.inventory.quantity + 1
		`, id, item); err != nil {
			return out, err
		}
		drugs = append(drugs, item)
	}

	newBalance := acct.Balance + income
	if _, err := tx.Exec(ctx, `
		UPDATE econ.accounts
		SET balance = $1, last_passive_at = $2, updated_at = now()
		WHERE id = $3
	`, newBalance, now, id); err != nil {
		return out, err
	}
	if income > 0 {
		if err := appendLedger(ctx, tx, id, "passive_income", income); err != nil {
			return out, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	return PassiveResult{Hours: hours, Income: income, Drugs: drugs, NewBalance: newBalance}, nil
}

func (s *Service) BuyAsset(ctx context.Context, id string, class AssetClass, idx int) (PurchaseResult, error) {
	var out PurchaseResult
	table, err := class.table()
	if err != nil {
		return out, err
	}
	name, price, err := assetInfo(class, idx)
	if err != nil {
		return out, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, id)
	if err != nil {
		return out, err
	}
	if class == ClassIllegal && !illegalShopOpen(acct.Balance) {
		return out, ErrShopLocked
	}

	var owned bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE user_id = $1 AND idx = $2)`,
		id, idx,
	).Scan(&owned); err != nil {
		return out, err
	}
	if owned {
		return out, ErrAlreadyOwned
	}
	if acct.Balance < price {
		return out, ErrInsufficientFunds
	}

	newBalance := acct.Balance - price
	if _, err := tx.Exec(ctx, `
		UPDATE econ.accounts SET balance = $1, updated_at = now() WHERE id = $2
	`, newBalance, id); err != nil {
		return out, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO `+table+` (user_id, idx) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		id, idx,
	); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, id, "buy_"+string(class), -price); err != nil {
		return out, err
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	return PurchaseResult{Name: name, Price: price, NewBalance: newBalance}, nil
}

func illegalShopOpen(balance int64) bool {
	return balance >= IllegalShopMinimum
}

// IllegalShopOpen reports whether the account clears the illegal market
// entry gate. Both the shop listing and the purchase path use it; the
// purchase re-checks under the row lock.
func (s *Service) IllegalShopOpen(ctx context.Context, id string) (bool, error) {
	acct, err := s.readAccount(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return illegalShopOpen(acct.Balance), nil
}

func (s *Service) Transfer(ctx context.Context, from, to string, amount int64) (TransferResult, error) {
	var out TransferResult
	if from == to {
		return out, ErrSelfTransfer
	}
	if amount <= 0 {
		return out, fmt.Errorf("%w: amount must be positive", ErrInvalidBet)
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	sender, recipient, err := lockPair(ctx, tx, from, to)
	if err != nil {
		return out, err
	}
	if sender.Balance < amount {
		return out, ErrInsufficientFunds
	}
	newBalance := sender.Balance - amount
	if err := setBalance(ctx, tx, from, newBalance); err != nil {
		return out, err
	}
	if err := setBalance(ctx, tx, to, recipient.Balance+amount); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, from, "transfer_out", -amount); err != nil {
		return out, err
	}
	if err := appendLedger(ctx, tx, to, "transfer_in", amount); err != nil {
		return out, err
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	return TransferResult{Amount: amount, RecipientName: recipient.Name, NewBalance: newBalance}, nil
}

func (s *Service) AdminGive(ctx context.Context, target string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidBet)
	}
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, target)
	if err != nil {
		return 0, err
	}
	newBalance := acct.Balance + amount
	if err := setBalance(ctx, tx, target, newBalance); err != nil {
		return 0, err
	}
	if err := appendLedger(ctx, tx, target, "admin_give", amount); err != nil {
		return 0, err
	}
	return newBalance, tx.Commit(ctx)
}

func (s *Service) AdminRemove(ctx context.Context, target string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidBet)
	}
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, target)
	if err != nil {
		return 0, err
	}
	if acct.Balance < amount {
		return 0, ErrInsufficientFunds
	}
	newBalance := acct.Balance - amount
	if err := setBalance(ctx, tx, target, newBalance); err != nil {
		return 0, err
	}
	if err := appendLedger(ctx, tx, target, "admin_remove", -amount); err != nil {
		return 0, err
	}
	return newBalance, tx.Commit(ctx)
}

func (s *Service) AdminRemoveAsset(ctx context.Context, target string, class AssetClass, idx int) (string, error) {
	table, err := class.table()
	if err != nil {
		return "", err
	}
	name, _, err := assetInfo(class, idx)
	if err != nil {
		return "", err
	}
	cmd, err := s.db.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1 AND idx = $2`, target, idx)
	if err != nil {
		return "", err
	}
	if cmd.RowsAffected() == 0 {
		return "", ErrNotOwned
	}
	return name, nil
}

func (s *Service) UseDrug(ctx context.Context, id, name string) (UseResult, error) {
	var out UseResult
	drug, ok := DrugByName(name)
	if !ok {
		return out, ErrItemNotFound
	}
	spec := EffectTable[drug.Effect]

	tx, err := s.begin(ctx)
	if err != nil {
		return out, err
	}
	defer tx.Rollback(ctx)

	if _, err := lockAccount(ctx, tx, id); err != nil {
		return out, err
	}
	var qty int
	err = tx.QueryRow(ctx, `
		SELECT quantity FROM econ.inventory
		WHERE user_id = $1 AND item = $2
		FOR UPDATE
	`, id, drug.Name).Scan(&qty)
	if err == pgx.ErrNoRows || (err == nil && qty <= 0) {
		return out, ErrNothingToUse
	}
	if err != nil {
		return out, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE econ.inventory SET quantity = quantity - 1
		WHERE user_id = $1 AND item = $2
	`, id, drug.Name); err != nil {
		return out, err
	}

	expiresAt := time.Now().Add(spec.Duration)
	if _, err := tx.Exec(ctx, `
		INSERT INTO econ.active_effects (user_id, effect, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, effect) DO UPDATE SET expires_at = EXCLUDED.expires_at
	`, id, string(drug.Effect), expiresAt); err != nil {
		return out, err
	}
	if err := tx.Commit(ctx); err != nil {
		return out, err
	}
	return UseResult{Drug: drug.Name, ExpiresAt: expiresAt}, nil
}

// SweepExpiredEffects removes effect rows whose expiry has passed.
func (s *Service) SweepExpiredEffects(ctx context.Context) (int64, error) {
	cmd, err := s.db.Exec(ctx, `DELETE FROM econ.active_effects WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// EffectBonus reads the live bonus for one target operation, e.g. the
// coinflip luck bump.
func (s *Service) EffectBonus(ctx context.Context, id string, target TargetOp) (float64, error) {
	effects, err := s.activeEffects(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	return effectBonus(effects, target), nil
}

// DebitWager resolves a BetAmount against the live balance and debits it in
// one transaction. "all" bets settle against the locked row, never a stale
// read.
func (s *Service) DebitWager(ctx context.Context, id string, bet BetAmount, game string) (amount, newBalance int64, err error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback(ctx)

	acct, err := lockAccount(ctx, tx, id)
	if err != nil {
		return 0, 0, err
	}
	amount, err = bet.Resolve(acct.Balance)
	if err != nil {
		return 0, 0, err
	}
	newBalance = acct.Balance - amount
	if err := setBalance(ctx, tx, id, newBalance); err != nil {
		return 0, 0, err
	}
	if err := appendLedger(ctx, tx, id, game+"_wager", -amount); err != nil {
		return 0, 0, err
	}
	return amount, newBalance, tx.Commit(ctx)
}

// Settle credits a game payout to the player and applies the house leg in
// the same transaction. The house is subject to the ordinary balance floor,
// so a broke house aborts the whole settlement.
func (s *Service) Settle(ctx context.Context, id string, playerCredit, houseDelta int64, game string) (int64, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var player, house Account
	if houseDelta != 0 && id != s.houseID {
		player, house, err = lockPair(ctx, tx, id, s.houseID)
	} else {
		player, err = lockAccount(ctx, tx, id)
		house = player
	}
	if err != nil {
		return 0, err
	}

	newBalance := player.Balance + playerCredit
	if id == s.houseID {
		newBalance += houseDelta
		houseDelta = 0
	}
	if err := setBalance(ctx, tx, id, newBalance); err != nil {
		return 0, err
	}
	if playerCredit != 0 {
		if err := appendLedger(ctx, tx, id, game+"_payout", playerCredit); err != nil {
			return 0, err
		}
	}
	if houseDelta != 0 {
		houseBalance := house.Balance + houseDelta
		if houseBalance < 0 {
			return 0, fmt.Errorf("%w: house cannot cover the payout", ErrInsufficientFunds)
		}
		if err := setBalance(ctx, tx, s.houseID, houseBalance); err != nil {
			return 0, err
		}
		if err := appendLedger(ctx, tx, s.houseID, game+"_house", houseDelta); err != nil {
			return 0, err
		}
	}
	return newBalance, tx.Commit(ctx)
}

func (s *Service) begin(ctx context.Context) (pgx.Tx, error) {
	return s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
}

func (s *Service) nextIntn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Intn(n)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *Service) activeEffects(ctx context.Context, q querier, id string) ([]ActiveEffect, error) {
	rows, err := q.Query(ctx, `
		SELECT effect, expires_at FROM econ.active_effects
		WHERE user_id = $1 AND expires_at > now()
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ActiveEffect
	for rows.Next() {
		var kind string
		var exp time.Time
		if err := rows.Scan(&kind, &exp); err != nil {
			return nil, err
		}
		out = append(out, ActiveEffect{Kind: EffectKind(kind), ExpiresAt: exp})
	}
	return out, rows.Err()
}

func (s *Service) readAccount(ctx context.Context, id string) (Account, error) {
	var a Account
	err := s.db.QueryRow(ctx, `
		SELECT id, name, job_tier, job_rank, balance, times_worked, last_work_at, last_passive_at
		FROM econ.accounts WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.JobTier, &a.JobRank, &a.Balance, &a.TimesWorked, &a.LastWorkAt, &a.LastPassiveAt)
	return a, err
}

func (s *Service) ownedIndexes(ctx context.Context, table, id string) ([]int, error) {
	return scanIndexes(s.db.Query(ctx, `SELECT idx FROM `+table+` WHERE user_id = $1 ORDER BY idx`, id))
}

func ownedIndexesTx(ctx context.Context, tx pgx.Tx, table, id string) ([]int, error) {
	return scanIndexes(tx.Query(ctx, `SELECT idx FROM `+table+` WHERE user_id = $1 ORDER BY idx`, id))
}

func scanIndexes(rows pgx.Rows, err error) ([]int, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, rows.Err()
}

// lockAccount lazily creates the row, then takes the row lock that serializes
// every mutation for this user.
func lockAccount(ctx context.Context, tx pgx.Tx, id string) (Account, error) {
	var a Account
	if _, err := tx.Exec(ctx, `
		INSERT INTO econ.accounts (id) VALUES ($1) ON CONFLICT (id) DO NOTHING
	`, id); err != nil {
		return a, err
	}
	err := tx.QueryRow(ctx, `
		SELECT id, name, job_tier, job_rank, balance, times_worked, last_work_at, last_passive_at
		FROM econ.accounts WHERE id = $1
		FOR UPDATE
	`, id).Scan(&a.ID, &a.Name, &a.JobTier, &a.JobRank, &a.Balance, &a.TimesWorked, &a.LastWorkAt, &a.LastPassiveAt)
	return a, err
}

// lockPair locks two accounts in id order so concurrent two-party operations
// cannot deadlock.
func lockPair(ctx context.Context, tx pgx.Tx, idA, idB string) (Account, Account, error) {
	first, second := idA, idB
	if second < first {
		first, second = second, first
	}
	f, err := lockAccount(ctx, tx, first)
	if err != nil {
		return Account{}, Account{}, err
	}
	sec, err := lockAccount(ctx, tx, second)
	if err != nil {
		return Account{}, Account{}, err
	}
	if first == idA {
		return f, sec, nil
	}
	return sec, f, nil
}

func setBalance(ctx context.Context, tx pgx.Tx, id string, balance int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE econ.accounts SET balance = $1, updated_at = now() WHERE id = $2
	`, balance, id)
	return err
}

func appendLedger(ctx context.Context, tx pgx.Tx, userID, action string, delta int64) error {
	txID := uuid.NewString()
	meta, _ := json.Marshal(map[string]any{"action": action})
	_, err := tx.Exec(ctx, `
		INSERT INTO econ.ledger_entries (tx_group_id, user_id, account, delta, metadata)
		VALUES
		($1, $2, 'wallet', $3, $5::jsonb),
		($1, $2, 'counterparty', $4, $5::jsonb)
	`, txID, userID, delta, -delta, string(meta))
	return err
}

func effectBonus(effects []ActiveEffect, target TargetOp) float64 {
	var bonus float64
	for _, e := range effects {
		spec, ok := EffectTable[e.Kind]
		if ok && spec.Target == target {
			bonus += spec.Bonus
		}
	}
	return bonus
}

func cooldownCut(effects []ActiveEffect) time.Duration {
	var cut time.Duration
	for _, e := range effects {
		spec, ok := EffectTable[e.Kind]
		if ok && spec.Target == OpWorkCooldown {
			cut += spec.CooldownCut
		}
	}
	return cut
}

func (c AssetClass) table() (string, error) {
	switch c {
	case ClassHouse:
		return "econ.houses", nil
	case ClassBusiness:
		return "econ.businesses", nil
	case ClassIllegal:
		return "econ.illegal_businesses", nil
	}
	return "", ErrInvalidAsset
}

func assetInfo(class AssetClass, idx int) (string, int64, error) {
	switch class {
	case ClassHouse:
		if idx < 0 || idx >= len(Houses) {
			return "", 0, ErrInvalidAsset
		}
		return Houses[idx].Name, Houses[idx].Price, nil
	case ClassBusiness:
		if idx < 0 || idx >= len(Businesses) {
			return "", 0, ErrInvalidAsset
		}
		return Businesses[idx].Name, Businesses[idx].Price, nil
	case ClassIllegal:
		if idx < 0 || idx >= len(IllegalBusinesses) {
			return "", 0, ErrInvalidAsset
		}
		return IllegalBusinesses[idx].Name, IllegalBusinesses[idx].Price, nil
	}
	return "", 0, ErrInvalidAsset
}
