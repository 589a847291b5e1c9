package bot

import (
	"errors"
	"testing"

	"github.com/Leo-Carroll/EconBot/internal/economy"
)

func TestParseIgnoresNonCommands(t *testing.T) {
	for _, content := range []string{"hello", "", "! ", "!"} {
		if _, err := Parse("!", content, nil); !errors.Is(err, ErrNotCommand) {
			t.Fatalf("Parse(%q) expected ErrNotCommand, got %v", content, err)
		}
	}
}

func TestParseUnknownVerb(t *testing.T) {
	if _, err := Parse("!", "!frobnicate", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestParseSimpleCommands(t *testing.T) {
	tests := []struct {
		content string
		want    Command
	}{
		{"!help", HelpCmd{}},
		{"!work", WorkCmd{}},
		{"!jobs", JobsCmd{}},
		{"!quitjob", QuitJobCmd{}},
		{"!promote", PromoteCmd{}},
		{"!leaderboard", LeaderboardCmd{}},
		{"!leaderboard 25", LeaderboardCmd{Limit: 25}},
		{"!lb", LeaderboardCmd{}},
		{"!passive", PassiveCmd{}},
		{"!houseshop", HouseShopCmd{}},
		{"!businessshop", BizShopCmd{}},
		{"!illegalbusinessshop", IllegalShopCmd{}},
		{"!myloans", MyLoansCmd{}},
		{"!mydebts", MyDebtsCmd{}},
		{"!shutdown", ShutdownCmd{}},
	}
	for _, tc := range tests {
		got, err := Parse("!", tc.content, nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.content, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.content, got, tc.want)
		}
	}
}

func TestParseGetJobJoinsWords(t *testing.T) {
	got, err := Parse("!", "!getjob Street Performer", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd, ok := got.(GetJobCmd)
	if !ok || cmd.Job != "Street Performer" {
		t.Fatalf("got %#v", got)
	}
}

func TestParseView(t *testing.T) {
	got, err := Parse("!", "!view", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd := got.(ViewCmd); cmd.Target != "" {
		t.Fatalf("self view target = %q", cmd.Target)
	}

	got, err = Parse("!", "!view <@123>", []string{"123"})
	if err != nil {
		t.Fatalf("parse with mention: %v", err)
	}
	if cmd := got.(ViewCmd); cmd.Target != "123" {
		t.Fatalf("mention view target = %q", cmd.Target)
	}
}

func TestParseGiveMoney(t *testing.T) {
	got, err := Parse("!", "!givemoney <@42> 250", []string{"42"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd, ok := got.(GiveCmd)
	if !ok || cmd.Target != "42" || cmd.Amount != 250 {
		t.Fatalf("got %#v", got)
	}

	// Missing mention or amount is a usage error.
	for _, content := range []string{"!givemoney 250", "!givemoney <@42>", "!givemoney <@42> zero"} {
		mentions := []string{"42"}
		if content == "!givemoney 250" {
			mentions = nil
		}
		_, err := Parse("!", content, mentions)
		var usage *UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("Parse(%q) expected usage error, got %v", content, err)
		}
	}
}

func TestParseAdminRemoveAsset(t *testing.T) {
	cases := []struct {
		content string
		want    AdminRemoveAssetCmd
	}{
		{"!adminremovehouse <@42> 2", AdminRemoveAssetCmd{Target: "42", Class: economy.ClassHouse, Index: 2}},
		{"!adminremoveasset <@42> house 0", AdminRemoveAssetCmd{Target: "42", Class: economy.ClassHouse, Index: 0}},
		{"!adminremoveasset <@42> business 3", AdminRemoveAssetCmd{Target: "42", Class: economy.ClassBusiness, Index: 3}},
		{"!adminremoveasset <@42> illegal 1", AdminRemoveAssetCmd{Target: "42", Class: economy.ClassIllegal, Index: 1}},
	}
	for _, tc := range cases {
		got, err := Parse("!", tc.content, []string{"42"})
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.content, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.content, got, tc.want)
		}
	}

	for _, content := range []string{"!adminremoveasset <@42> castle 1", "!adminremoveasset <@42> house x"} {
		var usage *UsageError
		if _, err := Parse("!", content, []string{"42"}); !errors.As(err, &usage) {
			t.Fatalf("Parse(%q) expected usage error, got %v", content, err)
		}
	}
}

func TestParseBets(t *testing.T) {
	got, err := Parse("!", "!blackjack 500", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd := got.(BlackjackCmd); cmd.Bet != (economy.BetAmount{Value: 500}) {
		t.Fatalf("got %#v", cmd)
	}

	got, err = Parse("!", "!cf all", nil)
	if err != nil {
		t.Fatalf("parse alias: %v", err)
	}
	if cmd := got.(CoinflipCmd); !cmd.Bet.All {
		t.Fatalf("got %#v", cmd)
	}

	got, err = Parse("!", "!hl 25", nil)
	if err != nil {
		t.Fatalf("parse hl: %v", err)
	}
	if cmd := got.(HigherLowerCmd); cmd.Bet.Value != 25 {
		t.Fatalf("got %#v", cmd)
	}

	got, err = Parse("!", "!slots 75", nil)
	if err != nil {
		t.Fatalf("parse slots: %v", err)
	}
	if cmd := got.(SlotsCmd); cmd.Bet.Value != 75 {
		t.Fatalf("got %#v", cmd)
	}

	var usage *UsageError
	for _, content := range []string{"!slots", "!slots -10", "!slots all"} {
		if _, err := Parse("!", content, nil); !errors.As(err, &usage) {
			t.Fatalf("Parse(%q) expected usage error, got %v", content, err)
		}
	}
}

func TestParseRoulette(t *testing.T) {
	got, err := Parse("!", "!roulette 100 RED", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd := got.(RouletteCmd)
	if cmd.Bet.Value != 100 || cmd.Choice != "red" {
		t.Fatalf("got %#v", cmd)
	}

	var usage *UsageError
	if _, err := Parse("!", "!roulette 100", nil); !errors.As(err, &usage) {
		t.Fatalf("missing choice expected usage error, got %v", err)
	}
}

func TestParseLoan(t *testing.T) {
	got, err := Parse("!", "!loan <@7> 1000 12.5 14", []string{"7"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd := got.(LoanOfferCmd)
	if cmd.Borrower != "7" || cmd.Amount != 1000 || cmd.InterestPct != 12.5 || cmd.Days != 14 {
		t.Fatalf("got %#v", cmd)
	}

	var usage *UsageError
	bad := []string{
		"!loan <@7> 1000 12.5",   // missing days
		"!loan <@7> -5 10 7",     // negative amount
		"!loan <@7> 1000 -1 7",   // negative interest
		"!loan <@7> 1000 10 0",   // zero days
		"!loan <@7> money 10 7",  // non-numeric amount
	}
	for _, content := range bad {
		if _, err := Parse("!", content, []string{"7"}); !errors.As(err, &usage) {
			t.Fatalf("Parse(%q) expected usage error, got %v", content, err)
		}
	}
}

func TestParseRepayAndUse(t *testing.T) {
	got, err := Parse("!", "!repay 12", nil)
	if err != nil {
		t.Fatalf("parse repay: %v", err)
	}
	if cmd := got.(RepayCmd); cmd.LoanID != 12 {
		t.Fatalf("got %#v", cmd)
	}

	got, err = Parse("!", "!use LSD", nil)
	if err != nil {
		t.Fatalf("parse use: %v", err)
	}
	if cmd := got.(UseCmd); cmd.Item != "LSD" {
		t.Fatalf("got %#v", cmd)
	}
}

func TestParseCustomPrefix(t *testing.T) {
	if _, err := Parse("$", "!work", nil); !errors.Is(err, ErrNotCommand) {
		t.Fatalf("wrong prefix expected ErrNotCommand, got %v", err)
	}
	got, err := Parse("$", "$work", nil)
	if err != nil {
		t.Fatalf("parse with $ prefix: %v", err)
	}
	if _, ok := got.(WorkCmd); !ok {
		t.Fatalf("got %#v", got)
	}
}
