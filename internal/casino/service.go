package casino

import (
	"context"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/Leo-Carroll/EconBot/internal/economy"
)

// Service runs the casino on top of the economy ledger. The wager is always
// debited up front inside its own transaction; the payout and house leg land
// in a second transaction when the round resolves.
type Service struct {
	econ      *economy.Service
	reg       *Registry
	log       *slog.Logger
	spinDelay time.Duration

	mu   sync.Mutex
	rand *mathrand.Rand

	timerMu sync.Mutex
	timers  map[string]*time.Timer
	closed  bool
}

func NewService(econ *economy.Service, logger *slog.Logger, spinDelay time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		econ:      econ,
		reg:       NewRegistry(),
		log:       logger,
		spinDelay: spinDelay,
		rand:      mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		timers:    make(map[string]*time.Timer),
	}
}

type BlackjackView struct {
	PlayerTotal int   `json:"player_total"`
	DealerTotal int   `json:"dealer_total"`
	Wager       int64 `json:"wager"`
	Card        int   `json:"card,omitempty"`
	Done        bool  `json:"done"`
	Outcome     Outcome
	Payout      int64 `json:"payout,omitempty"`
	NewBalance  int64 `json:"new_balance,omitempty"`
}

type CoinflipResult struct {
	Side       string `json:"side"`
	Won        bool   `json:"won"`
	Wager      int64  `json:"wager"`
	Payout     int64  `json:"payout"`
	NewBalance int64  `json:"new_balance"`
}

type HigherLowerResult struct {
	Reference  int     `json:"reference"`
	Drawn      int     `json:"drawn"`
	Outcome    Outcome `json:"outcome"`
	Wager      int64   `json:"wager"`
	Payout     int64   `json:"payout"`
	NewBalance int64   `json:"new_balance"`
}

type RouletteResult struct {
	Pocket     int    `json:"pocket"`
	Choice     string `json:"choice"`
	Won        bool   `json:"won"`
	Wager      int64  `json:"wager"`
	Payout     int64  `json:"payout"`
	NewBalance int64  `json:"new_balance"`
}

type SlotsResult struct {
	Reels      [3]string `json:"reels"`
	Wager      int64     `json:"wager"`
	Payout     int64     `json:"payout"`
	NewBalance int64     `json:"new_balance"`
}

// beginFunded reserves the session slot first, then debits the wager. The
// slot reservation is what makes a double-sent command fail fast instead of
// debiting twice.
func (s *Service) beginFunded(ctx context.Context, userID string, kind Kind, bet economy.BetAmount) (*Session, int64, error) {
	sess, err := s.reg.Begin(userID, kind)
	if err != nil {
		return nil, 0, err
	}
	amount, _, err := s.econ.DebitWager(ctx, userID, bet, string(kind))
	if err != nil {
		s.reg.Resolve(userID, kind)
		return nil, 0, err
	}
	sess.Wager = amount
	return sess, amount, nil
}

func (s *Service) StartBlackjack(ctx context.Context, userID string, bet economy.BetAmount) (BlackjackView, error) {
	sess, wager, err := s.beginFunded(ctx, userID, KindBlackjack, bet)
	if err != nil {
		return BlackjackView{}, err
	}
	player, dealer := DealBlackjack(s.rng())
	sess.Lock()
	sess.PlayerTotal = player
	sess.DealerTotal = dealer
	sess.Unlock()
	return BlackjackView{PlayerTotal: player, DealerTotal: dealer, Wager: wager}, nil
}

func (s *Service) HitBlackjack(ctx context.Context, userID string) (BlackjackView, error) {
	sess, err := s.reg.Get(userID, KindBlackjack)
	if err != nil {
		return BlackjackView{}, err
	}
	sess.Lock()
	defer sess.Unlock()

	card, newTotal, busted := BlackjackHit(s.rng(), sess.PlayerTotal)
	sess.PlayerTotal = newTotal
	view := BlackjackView{
		PlayerTotal: newTotal,
		DealerTotal: sess.DealerTotal,
		Wager:       sess.Wager,
		Card:        card,
	}
	if !busted {
		return view, nil
	}
	balance, err := s.econ.Settle(ctx, userID, 0, sess.Wager, string(KindBlackjack))
	if err != nil {
		return view, err
	}
	s.reg.Resolve(userID, KindBlackjack)
	view.Done = true
	view.Outcome = OutcomeLoss
	view.NewBalance = balance
	return view, nil
}

func (s *Service) StandBlackjack(ctx context.Context, userID string) (BlackjackView, error) {
	sess, err := s.reg.Get(userID, KindBlackjack)
	if err != nil {
		return BlackjackView{}, err
	}
	sess.Lock()
	defer sess.Unlock()

	finalDealer, outcome := BlackjackStand(s.rng(), sess.PlayerTotal, sess.DealerTotal)
	sess.DealerTotal = finalDealer

	credit, houseDelta := settleLegs(outcome, sess.Wager)
	balance, err := s.econ.Settle(ctx, userID, credit, houseDelta, string(KindBlackjack))
	if err != nil {
		return BlackjackView{}, err
	}
	s.reg.Resolve(userID, KindBlackjack)
	return BlackjackView{
		PlayerTotal: sess.PlayerTotal,
		DealerTotal: finalDealer,
		Wager:       sess.Wager,
		Done:        true,
		Outcome:     outcome,
		Payout:      credit,
		NewBalance:  balance,
	}, nil
}

func (s *Service) StartCoinflip(ctx context.Context, userID string, bet economy.BetAmount) (int64, error) {
	_, wager, err := s.beginFunded(ctx, userID, KindCoinflip, bet)
	return wager, err
}

func (s *Service) ResolveCoinflip(ctx context.Context, userID, call string) (CoinflipResult, error) {
	var out CoinflipResult
	if !CoinflipCall(call) {
		return out, fmt.Errorf("%w: call heads or tails", economy.ErrInvalidBet)
	}
	sess, err := s.reg.Get(userID, KindCoinflip)
	if err != nil {
		return out, err
	}
	sess.Lock()
	defer sess.Unlock()

	luck, err := s.econ.EffectBonus(ctx, userID, economy.OpCoinflipLuck)
	if err != nil {
		return out, err
	}
	side, won := FlipCoin(s.rng(), call, luck)

	outcome := OutcomeLoss
	if won {
		outcome = OutcomeWin
	}
	credit, houseDelta := settleLegs(outcome, sess.Wager)
	balance, err := s.econ.Settle(ctx, userID, credit, houseDelta, string(KindCoinflip))
	if err != nil {
		return out, err
	}
	s.reg.Resolve(userID, KindCoinflip)
	return CoinflipResult{Side: side, Won: won, Wager: sess.Wager, Payout: credit, NewBalance: balance}, nil
}

func (s *Service) StartHigherLower(ctx context.Context, userID string, bet economy.BetAmount) (int64, error) {
	_, wager, err := s.beginFunded(ctx, userID, KindHigherLower, bet)
	return wager, err
}

func (s *Service) ResolveHigherLower(ctx context.Context, userID string, guessHigher bool) (HigherLowerResult, error) {
	var out HigherLowerResult
	sess, err := s.reg.Get(userID, KindHigherLower)
	if err != nil {
		return out, err
	}
	sess.Lock()
	defer sess.Unlock()

	drawn, outcome := ResolveHigherLower(s.rng(), guessHigher)
	credit, houseDelta := settleLegs(outcome, sess.Wager)
	balance, err := s.econ.Settle(ctx, userID, credit, houseDelta, string(KindHigherLower))
	if err != nil {
		return out, err
	}
	s.reg.Resolve(userID, KindHigherLower)
	return HigherLowerResult{
		Reference:  HigherLowerReference,
		Drawn:      drawn,
		Outcome:    outcome,
		Wager:      sess.Wager,
		Payout:     credit,
		NewBalance: balance,
	}, nil
}

// PlayRoulette debits the wager now and spins after the configured delay.
// The notify callback runs on the timer goroutine with the final result, or
// the settlement error if the payout could not land.
func (s *Service) PlayRoulette(ctx context.Context, userID string, bet economy.BetAmount, choice string, notify func(RouletteResult, error)) (int64, error) {
	if !ValidRouletteChoice(choice) {
		return 0, fmt.Errorf("%w: pick a number 0-36, red, black, odd, or even", economy.ErrInvalidBet)
	}
	sess, wager, err := s.beginFunded(ctx, userID, KindRoulette, bet)
	if err != nil {
		return 0, err
	}
	sess.Lock()
	sess.Choice = choice
	sess.Unlock()

	s.timerMu.Lock()
	if s.closed {
		s.timerMu.Unlock()
		s.refund(userID, wager, string(KindRoulette))
		s.reg.Resolve(userID, KindRoulette)
		return 0, fmt.Errorf("casino is shutting down")
	}
	s.timers[userID] = time.AfterFunc(s.spinDelay, func() {
		s.settleRoulette(userID, choice, wager, notify)
	})
	s.timerMu.Unlock()
	return wager, nil
}

func (s *Service) settleRoulette(userID, choice string, wager int64, notify func(RouletteResult, error)) {
	s.timerMu.Lock()
	delete(s.timers, userID)
	s.timerMu.Unlock()
	defer s.reg.Resolve(userID, KindRoulette)

	// The originating command context is long gone by now.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pocket, won, payout := SpinRoulette(s.rng(), choice, wager)
	var credit, houseDelta int64
	if won {
		credit, houseDelta = payout, -payout
	} else {
		houseDelta = wager
	}
	balance, err := s.econ.Settle(ctx, userID, credit, houseDelta, string(KindRoulette))
	if err != nil {
		s.log.Error("roulette settlement failed", "user", userID, "err", err)
		notify(RouletteResult{}, err)
		return
	}
	notify(RouletteResult{
		Pocket:     pocket,
		Choice:     choice,
		Won:        won,
		Wager:      wager,
		Payout:     payout,
		NewBalance: balance,
	}, nil)
}

func (s *Service) PlaySlots(ctx context.Context, userID string, bet economy.BetAmount) (SlotsResult, error) {
	var out SlotsResult
	_, wager, err := s.beginFunded(ctx, userID, KindSlots, bet)
	if err != nil {
		return out, err
	}
	defer s.reg.Resolve(userID, KindSlots)

	reels, payout := SpinSlots(s.rng(), wager)
	// The reels keep the whole wager on a miss. The house account is not a
	// counterparty here.
	balance, err := s.econ.Settle(ctx, userID, payout, 0, string(KindSlots))
	if err != nil {
		return out, err
	}
	return SlotsResult{Reels: reels, Wager: wager, Payout: payout, NewBalance: balance}, nil
}

// Close stops pending roulette timers and refunds their wagers so a restart
// cannot eat a debited bet.
func (s *Service) Close() {
	s.timerMu.Lock()
	s.closed = true
	pending := make(map[string]*time.Timer, len(s.timers))
	for id, t := range s.timers {
		pending[id] = t
	}
	s.timers = make(map[string]*time.Timer)
	s.timerMu.Unlock()

	for userID, t := range pending {
		if !t.Stop() {
			continue
		}
		sess, err := s.reg.Get(userID, KindRoulette)
		if err != nil {
			continue
		}
		s.refund(userID, sess.Wager, string(KindRoulette))
		s.reg.Resolve(userID, KindRoulette)
	}
}

func (s *Service) refund(userID string, wager int64, game string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.econ.Settle(ctx, userID, wager, 0, game+"_refund"); err != nil {
		s.log.Error("wager refund failed", "user", userID, "amount", wager, "err", err)
	}
}

func settleLegs(outcome Outcome, wager int64) (playerCredit, houseDelta int64) {
	switch outcome {
	case OutcomeWin:
		return wager * 2, -wager
	case OutcomePush:
		return wager, 0
	default:
		return 0, wager
	}
}

// rng hands out a per-round generator. The shared source is only touched
// under the mutex since roulette settles on a timer goroutine.
func (s *Service) rng() *mathrand.Rand {
	s.mu.Lock()
	seed := s.rand.Int63()
	s.mu.Unlock()
	return mathrand.New(mathrand.NewSource(seed))
}
