package casino

import (
	"math/rand"
	"testing"
)

func TestDealBlackjackRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		player, dealer := DealBlackjack(rng)
		if player < 1 || player > 11 || dealer < 1 || dealer > 11 {
			t.Fatalf("opening totals out of range: player=%d dealer=%d", player, dealer)
		}
	}
}

func TestBlackjackHitBustsPast21(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// At 21 even the smallest draw busts.
	card, total, busted := BlackjackHit(rng, 21)
	if !busted {
		t.Fatalf("hit on 21 must bust, drew %d for %d", card, total)
	}
	if total != 21+card {
		t.Fatalf("total = %d, want %d", total, 21+card)
	}

	// At 10 the largest draw is 21, never a bust.
	for i := 0; i < 200; i++ {
		if _, total, busted := BlackjackHit(rng, 10); busted {
			t.Fatalf("hit on 10 busted at %d", total)
		}
	}
}

func TestBlackjackStandScoring(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		finalDealer, outcome := BlackjackStand(rng, 18, 5)
		if finalDealer < 17 {
			t.Fatalf("dealer stopped early at %d", finalDealer)
		}
		switch {
		case finalDealer > 21 || 18 > finalDealer:
			if outcome != OutcomeWin {
				t.Fatalf("dealer=%d expected win, got %v", finalDealer, outcome)
			}
		case 18 < finalDealer:
			if outcome != OutcomeLoss {
				t.Fatalf("dealer=%d expected loss, got %v", finalDealer, outcome)
			}
		default:
			if outcome != OutcomePush {
				t.Fatalf("dealer=%d expected push, got %v", finalDealer, outcome)
			}
		}
	}
}

func TestFlipCoinLuckBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		side, won := FlipCoin(rng, "heads", 1.0)
		if !won {
			t.Fatalf("guaranteed flip lost")
		}
		if side != "Heads" {
			t.Fatalf("winning heads call revealed %q", side)
		}
	}
	for i := 0; i < 100; i++ {
		side, won := FlipCoin(rng, "tails", -1.0)
		if won {
			t.Fatalf("impossible flip won")
		}
		if side != "Heads" {
			t.Fatalf("losing tails call revealed %q", side)
		}
	}
}

func TestFlipCoinRoughlyFair(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	wins := 0
	const n = 10_000
	for i := 0; i < n; i++ {
		if _, won := FlipCoin(rng, "heads", 0); won {
			wins++
		}
	}
	if wins < n*4/10 || wins > n*6/10 {
		t.Fatalf("fair coin won %d of %d", wins, n)
	}
}

func TestResolveHigherLower(t *testing.T) {
	for seed := int64(0); seed < 400; seed++ {
		rng := rand.New(rand.NewSource(seed))
		drawn, outcome := ResolveHigherLower(rng, true)
		if drawn < 1 || drawn > 100 {
			t.Fatalf("drawn number %d out of range", drawn)
		}
		switch {
		case drawn == HigherLowerReference:
			if outcome != OutcomePush {
				t.Fatalf("landing on the reference expected push, got %v", outcome)
			}
		case drawn > HigherLowerReference:
			if outcome != OutcomeWin {
				t.Fatalf("higher guess with draw %d expected win, got %v", drawn, outcome)
			}
		default:
			if outcome != OutcomeLoss {
				t.Fatalf("higher guess with draw %d expected loss, got %v", drawn, outcome)
			}
		}

		// The opposite call inverts win and loss but not the push.
		rng = rand.New(rand.NewSource(seed))
		drawnLow, outcomeLow := ResolveHigherLower(rng, false)
		if drawnLow != drawn {
			t.Fatalf("same seed drew %d then %d", drawn, drawnLow)
		}
		switch outcome {
		case OutcomePush:
			if outcomeLow != OutcomePush {
				t.Fatalf("push must not depend on the call")
			}
		case OutcomeWin:
			if outcomeLow != OutcomeLoss {
				t.Fatalf("inverted call expected loss, got %v", outcomeLow)
			}
		case OutcomeLoss:
			if outcomeLow != OutcomeWin {
				t.Fatalf("inverted call expected win, got %v", outcomeLow)
			}
		}
	}
}

func TestValidRouletteChoice(t *testing.T) {
	valid := []string{"red", "BLACK", "odd", "Even", "0", "36", "17"}
	for _, c := range valid {
		if !ValidRouletteChoice(c) {
			t.Fatalf("choice %q should be valid", c)
		}
	}
	invalid := []string{"", "blue", "37", "-1", "1.5", "allin"}
	for _, c := range invalid {
		if ValidRouletteChoice(c) {
			t.Fatalf("choice %q should be invalid", c)
		}
	}
}

func TestSpinRouletteScoring(t *testing.T) {
	const wager = int64(100)
	for seed := int64(0); seed < 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pocket, won, payout := SpinRoulette(rng, "red", wager)
		if pocket < 0 || pocket > 36 {
			t.Fatalf("pocket %d out of range", pocket)
		}
		if won != redPockets[pocket] {
			t.Fatalf("pocket %d red verdict %v", pocket, won)
		}
		if won && payout != wager*2 {
			t.Fatalf("red win payout = %d", payout)
		}
		if !won && payout != 0 {
			t.Fatalf("losing payout = %d", payout)
		}
	}

	for seed := int64(0); seed < 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pocket, won, payout := SpinRoulette(rng, "7", wager)
		if won != (pocket == 7) {
			t.Fatalf("straight bet verdict pocket=%d won=%v", pocket, won)
		}
		if won && payout != wager*35 {
			t.Fatalf("straight win payout = %d", payout)
		}
	}

	// Zero loses the even-money picks.
	for seed := int64(0); seed < 2000; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pocket, won, _ := SpinRoulette(rng, "even", wager)
		if pocket == 0 && won {
			t.Fatalf("zero must lose an even bet")
		}
	}
}

func TestSpinSlotsPayouts(t *testing.T) {
	const wager = int64(40)
	for seed := int64(0); seed < 500; seed++ {
		rng := rand.New(rand.NewSource(seed))
		reels, payout := SpinSlots(rng, wager)
		triple := reels[0] == reels[1] && reels[1] == reels[2]
		pair := reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]
		switch {
		case triple:
			if payout != wager*5 {
				t.Fatalf("triple payout = %d", payout)
			}
		case pair:
			if payout != wager*2 {
				t.Fatalf("pair payout = %d", payout)
			}
		default:
			if payout != 0 {
				t.Fatalf("miss payout = %d", payout)
			}
		}
	}
}

func TestSettleLegs(t *testing.T) {
	const wager = int64(100)
	tests := []struct {
		outcome     Outcome
		wantCredit  int64
		wantHouse   int64
		description string
	}{
		{OutcomeWin, 200, -100, "win pays double, house covers the profit"},
		{OutcomeLoss, 0, 100, "loss moves the wager to the house"},
		{OutcomePush, 100, 0, "push returns the wager without a house leg"},
	}
	for _, tc := range tests {
		credit, house := settleLegs(tc.outcome, wager)
		if credit != tc.wantCredit || house != tc.wantHouse {
			t.Fatalf("%s: got credit=%d house=%d", tc.description, credit, house)
		}
	}
}
