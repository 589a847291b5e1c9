package casino

import (
	"math/rand"
	"strconv"
	"strings"
)

// Outcome is the result of a finished round from the player's point of view.
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeWin
	OutcomePush
)

// drawTotal is one blackjack draw, 1 through 11.
func drawTotal(rng *rand.Rand) int {
	return rng.Intn(11) + 1
}

// DealBlackjack produces the opening totals for both sides.
func DealBlackjack(rng *rand.Rand) (player, dealer int) {
	return drawTotal(rng), drawTotal(rng)
}

// BlackjackHit draws for the player. busted is true past 21, which ends the
// hand as a loss.
func BlackjackHit(rng *rand.Rand, playerTotal int) (card, newTotal int, busted bool) {
	card = drawTotal(rng)
	newTotal = playerTotal + card
	return card, newTotal, newTotal > 21
}

// BlackjackStand plays the dealer out, drawing to 17 or higher, and scores
// the hand. A dealer bust or a higher player total wins.
func BlackjackStand(rng *rand.Rand, playerTotal, dealerTotal int) (finalDealer int, outcome Outcome) {
	for dealerTotal < 17 {
		dealerTotal += drawTotal(rng)
	}
	switch {
	case dealerTotal > 21 || playerTotal > dealerTotal:
		return dealerTotal, OutcomeWin
	case playerTotal < dealerTotal:
		return dealerTotal, OutcomeLoss
	default:
		return dealerTotal, OutcomePush
	}
}

// FlipCoin flips with the player's live luck bonus folded into the win
// chance. A fair coin is luckBonus 0.
func FlipCoin(rng *rand.Rand, call string, luckBonus float64) (side string, playerWins bool) {
	p := 0.5 + luckBonus
	if p > 1 {
		p = 1
	}
	playerWins = rng.Float64() < p
	// Render a side consistent with the verdict so the reveal matches the
	// player's call exactly when they win.
	side = "Heads"
	if strings.EqualFold(call, "heads") != playerWins {
		side = "Tails"
	}
	return side, playerWins
}

// CoinflipCall reports whether the call names a valid side.
func CoinflipCall(call string) bool {
	switch strings.ToLower(call) {
	case "heads", "tails":
		return true
	}
	return false
}

// HigherLowerReference is the fixed pivot the player calls against.
const HigherLowerReference = 50

// ResolveHigherLower draws 1 through 100 and scores the call against the
// reference. Hitting the reference exactly is a push.
func ResolveHigherLower(rng *rand.Rand, guessHigher bool) (drawn int, outcome Outcome) {
	drawn = rng.Intn(100) + 1
	switch {
	case drawn == HigherLowerReference:
		return drawn, OutcomePush
	case guessHigher == (drawn > HigherLowerReference):
		return drawn, OutcomeWin
	default:
		return drawn, OutcomeLoss
	}
}

var redPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true,
	18: true, 19: true, 21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// ValidRouletteChoice accepts "red", "black", "odd", "even", or a pocket
// number 0 through 36.
func ValidRouletteChoice(choice string) bool {
	switch strings.ToLower(choice) {
	case "red", "black", "odd", "even":
		return true
	}
	n, err := strconv.Atoi(choice)
	return err == nil && n >= 0 && n <= 36
}

// SpinRoulette spins the wheel and scores the pick. A straight number pays
// 35 to 1, the outside picks pay 2 to 1, and zero loses every outside pick.
func SpinRoulette(rng *rand.Rand, choice string, wager int64) (pocket int, won bool, payout int64) {
	pocket = rng.Intn(37)
	choice = strings.ToLower(choice)
	if n, err := strconv.Atoi(choice); err == nil {
		if n == pocket {
			return pocket, true, wager * 35
		}
		return pocket, false, 0
	}
	switch choice {
	case "red":
		won = redPockets[pocket]
	case "black":
		won = pocket != 0 && !redPockets[pocket]
	case "odd":
		won = pocket != 0 && pocket%2 == 1
	case "even":
		won = pocket != 0 && pocket%2 == 0
	}
	if won {
		return pocket, true, wager * 2
	}
	return pocket, false, 0
}

// SlotSymbols is the reel strip. Every reel draws uniformly from it.
var SlotSymbols = []string{"🍒", "🍋", "🍊", "🍉", "7️⃣", "⭐"}

// SpinSlots draws three reels. Three of a kind pays 5x, any pair pays 2x.
func SpinSlots(rng *rand.Rand, wager int64) (reels [3]string, payout int64) {
	for i := range reels {
		reels[i] = SlotSymbols[rng.Intn(len(SlotSymbols))]
	}
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		payout = wager * 5
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		payout = wager * 2
	}
	return reels, payout
}
