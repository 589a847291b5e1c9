package bot

import (
	"errors"
	"fmt"

	"github.com/Leo-Carroll/EconBot/internal/casino"
	"github.com/Leo-Carroll/EconBot/internal/economy"
)

var domainMessages = []struct {
	err error
	msg string
}{
	{economy.ErrInsufficientFunds, "You do not have enough money for that!"},
	{economy.ErrAlreadyOwned, "You already own that!"},
	{economy.ErrCooldownActive, "You are still on cooldown."},
	{economy.ErrNoJob, "You don't have a job. Use `getjob <job>` to get one."},
	{economy.ErrHasJob, "You already have a job. Quit it first."},
	{economy.ErrNotEntryJob, "That is not an entry-level job."},
	{economy.ErrTopRank, "You are already at the highest position in your job!"},
	{economy.ErrNoPassiveIncome, "You have no passive income."},
	{economy.ErrSelfTransfer, "You cannot do that with yourself."},
	{economy.ErrPermissionDenied, "You are not allowed to use that command."},
	{economy.ErrShopLocked, "You need at least $1,000,000 to enter the illegal market."},
	{economy.ErrItemNotFound, "That item doesn't exist."},
	{economy.ErrNothingToUse, "You don't have any of that!"},
	{economy.ErrInvalidBet, "Please enter a valid bet amount."},
	{economy.ErrInvalidAsset, "That is not a valid choice."},
	{economy.ErrNotOwned, "They don't own that."},
	{economy.ErrOfferPending, "That user already has a pending loan offer."},
	{economy.ErrNoPendingOffer, "You have no pending loan offer."},
	{economy.ErrLoanNotFound, "No such loan."},
	{economy.ErrLoanPaid, "That loan is already paid off."},
	{casino.ErrGameActive, "Finish your current game first!"},
	{casino.ErrNoSession, "You don't have a game in progress."},
}

// domainMessage maps service errors to a player-facing line. Anything not in
// the table is an internal failure and gets a generic apology.
func domainMessage(err error) string {
	var cooldown *economy.CooldownError
	if errors.As(err, &cooldown) {
		return fmt.Sprintf("You need to wait %d more minutes.", cooldown.Minutes())
	}
	for _, entry := range domainMessages {
		if errors.Is(err, entry.err) {
			return entry.msg
		}
	}
	return "Something went wrong. Try again in a moment."
}

func isDomainErr(err error) bool {
	for _, entry := range domainMessages {
		if errors.Is(err, entry.err) {
			return true
		}
	}
	return false
}
