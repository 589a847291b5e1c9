package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Leo-Carroll/EconBot/internal/economy"
)

var (
	ErrNotCommand     = errors.New("not a command")
	ErrUnknownCommand = errors.New("unknown command")
)

// UsageError carries the usage line shown back to the player when arguments
// do not parse.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return "usage: " + e.Usage }

func usageErr(usage string) error { return &UsageError{Usage: usage} }

// Command is one parsed chat command. Parsing is pure so it can be tested
// without a gateway connection.
type Command interface {
	name() string
}

type (
	HelpCmd        struct{}
	WorkCmd        struct{}
	JobsCmd        struct{}
	GetJobCmd      struct{ Job string }
	QuitJobCmd     struct{}
	PromoteCmd     struct{}
	ViewCmd        struct{ Target string }
	LeaderboardCmd struct{ Limit int }
	PassiveCmd     struct{}
	HouseShopCmd   struct{}
	BizShopCmd     struct{}
	IllegalShopCmd struct{}

	GiveCmd struct {
		Target string
		Amount int64
	}
	AdminGiveCmd struct {
		Target string
		Amount int64
	}
	AdminRemoveCmd struct {
		Target string
		Amount int64
	}
	AdminRemoveAssetCmd struct {
		Target string
		Class  economy.AssetClass
		Index  int
	}

	BlackjackCmd   struct{ Bet economy.BetAmount }
	CoinflipCmd    struct{ Bet economy.BetAmount }
	HigherLowerCmd struct{ Bet economy.BetAmount }
	SlotsCmd       struct{ Bet economy.BetAmount }
	RouletteCmd    struct {
		Bet    economy.BetAmount
		Choice string
	}

	UseCmd struct{ Item string }

	LoanOfferCmd struct {
		Borrower    string
		Amount      int64
		InterestPct float64
		Days        int
	}
	RepayCmd   struct{ LoanID int64 }
	MyLoansCmd struct{}
	MyDebtsCmd struct{}

	ShutdownCmd struct{}
)

func (HelpCmd) name() string             { return "help" }
func (WorkCmd) name() string             { return "work" }
func (JobsCmd) name() string             { return "jobs" }
func (GetJobCmd) name() string           { return "getjob" }
func (QuitJobCmd) name() string          { return "quitjob" }
func (PromoteCmd) name() string          { return "promote" }
func (ViewCmd) name() string             { return "view" }
func (LeaderboardCmd) name() string      { return "leaderboard" }
func (PassiveCmd) name() string          { return "passive" }
func (HouseShopCmd) name() string        { return "houseshop" }
func (BizShopCmd) name() string          { return "businessshop" }
func (IllegalShopCmd) name() string      { return "illegalbusinessshop" }
func (GiveCmd) name() string             { return "givemoney" }
func (AdminGiveCmd) name() string        { return "admingivemoney" }
func (AdminRemoveCmd) name() string      { return "removemoney" }
func (AdminRemoveAssetCmd) name() string { return "adminremoveasset" }
func (BlackjackCmd) name() string        { return "blackjack" }
func (CoinflipCmd) name() string         { return "coinflip" }
func (HigherLowerCmd) name() string      { return "higherorlower" }
func (SlotsCmd) name() string            { return "slots" }
func (RouletteCmd) name() string         { return "roulette" }
func (UseCmd) name() string              { return "use" }
func (LoanOfferCmd) name() string        { return "loan" }
func (RepayCmd) name() string            { return "repay" }
func (MyLoansCmd) name() string          { return "myloans" }
func (MyDebtsCmd) name() string          { return "mydebts" }
func (ShutdownCmd) name() string         { return "shutdown" }

// Parse turns raw message content into a typed command. mentions holds the
// mentioned user IDs in message order.
func Parse(prefix, content string, mentions []string) (Command, error) {
	if !strings.HasPrefix(content, prefix) {
		return nil, ErrNotCommand
	}
	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return nil, ErrNotCommand
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	mention := func() (string, bool) {
		if len(mentions) == 0 {
			return "", false
		}
		return mentions[0], true
	}

	switch verb {
	case "help":
		return HelpCmd{}, nil
	case "work":
		return WorkCmd{}, nil
	case "jobs":
		return JobsCmd{}, nil
	case "getjob":
		if len(args) == 0 {
			return nil, usageErr("getjob <job>")
		}
		return GetJobCmd{Job: strings.Join(args, " ")}, nil
	case "quitjob":
		return QuitJobCmd{}, nil
	case "promote":
		return PromoteCmd{}, nil
	case "view", "profile":
		target, _ := mention()
		return ViewCmd{Target: target}, nil
	case "leaderboard", "lb":
		if len(args) == 0 {
			return LeaderboardCmd{}, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return nil, usageErr("leaderboard [count]")
		}
		return LeaderboardCmd{Limit: n}, nil
	case "passive", "collect":
		return PassiveCmd{}, nil
	case "houseshop":
		return HouseShopCmd{}, nil
	case "businessshop":
		return BizShopCmd{}, nil
	case "illegalbusinessshop":
		return IllegalShopCmd{}, nil

	case "givemoney", "give", "pay":
		target, ok := mention()
		amount, err := parseAmount(args)
		if !ok || err != nil {
			return nil, usageErr("giveMoney <@user> <amount>")
		}
		return GiveCmd{Target: target, Amount: amount}, nil
	case "admingivemoney":
		target, ok := mention()
		amount, err := parseAmount(args)
		if !ok || err != nil {
			return nil, usageErr("adminGiveMoney <@user> <amount>")
		}
		return AdminGiveCmd{Target: target, Amount: amount}, nil
	case "removemoney", "adminremovemoney":
		target, ok := mention()
		amount, err := parseAmount(args)
		if !ok || err != nil {
			return nil, usageErr("removeMoney <@user> <amount>")
		}
		return AdminRemoveCmd{Target: target, Amount: amount}, nil
	case "adminremovehouse":
		target, ok := mention()
		if !ok || len(args) < 2 {
			return nil, usageErr("adminRemoveHouse <@user> <house index>")
		}
		idx, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return nil, usageErr("adminRemoveHouse <@user> <house index>")
		}
		return AdminRemoveAssetCmd{Target: target, Class: economy.ClassHouse, Index: idx}, nil
	case "adminremoveasset":
		target, ok := mention()
		if !ok || len(args) < 3 {
			return nil, usageErr("adminRemoveAsset <@user> <house|business|illegal> <index>")
		}
		class, ok := parseAssetClass(args[len(args)-2])
		idx, err := strconv.Atoi(args[len(args)-1])
		if !ok || err != nil {
			return nil, usageErr("adminRemoveAsset <@user> <house|business|illegal> <index>")
		}
		return AdminRemoveAssetCmd{Target: target, Class: class, Index: idx}, nil

	case "blackjack", "bj":
		bet, err := parseBetArg(args, "blackjack <bet>")
		if err != nil {
			return nil, err
		}
		return BlackjackCmd{Bet: bet}, nil
	case "coinflip", "cf":
		bet, err := parseBetArg(args, "coinflip <bet>")
		if err != nil {
			return nil, err
		}
		return CoinflipCmd{Bet: bet}, nil
	case "higherorlower", "hl":
		bet, err := parseBetArg(args, "higherOrLower <bet>")
		if err != nil {
			return nil, err
		}
		return HigherLowerCmd{Bet: bet}, nil
	case "slots":
		// Slots takes a plain amount, no "all" shorthand.
		if len(args) == 0 {
			return nil, usageErr("slots <bet>")
		}
		amount, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || amount <= 0 {
			return nil, usageErr("slots <bet>")
		}
		return SlotsCmd{Bet: economy.BetAmount{Value: amount}}, nil
	case "roulette":
		if len(args) < 2 {
			return nil, usageErr("roulette <bet> <number/red/black/even/odd>")
		}
		bet, err := economy.ParseBet(args[0])
		if err != nil {
			return nil, usageErr("roulette <bet> <number/red/black/even/odd>")
		}
		return RouletteCmd{Bet: bet, Choice: strings.ToLower(args[1])}, nil

	case "use":
		if len(args) == 0 {
			return nil, usageErr("use <drug>")
		}
		return UseCmd{Item: strings.Join(args, " ")}, nil

	case "loan":
		borrower, ok := mention()
		if !ok || len(args) < 4 {
			return nil, usageErr("loan <@user> <amount> <interest %> <days until due>")
		}
		amount, errA := strconv.ParseInt(args[1], 10, 64)
		interest, errI := strconv.ParseFloat(args[2], 64)
		days, errD := strconv.Atoi(args[3])
		if errA != nil || errI != nil || errD != nil || amount <= 0 || interest < 0 || days <= 0 {
			return nil, usageErr("loan <@user> <amount> <interest %> <days until due>")
		}
		return LoanOfferCmd{Borrower: borrower, Amount: amount, InterestPct: interest, Days: days}, nil
	case "repay":
		if len(args) == 0 {
			return nil, usageErr("repay <loan id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, usageErr("repay <loan id>")
		}
		return RepayCmd{LoanID: id}, nil
	case "myloans":
		return MyLoansCmd{}, nil
	case "mydebts":
		return MyDebtsCmd{}, nil

	case "shutdown":
		return ShutdownCmd{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

func parseAmount(args []string) (int64, error) {
	if len(args) < 2 {
		return 0, errors.New("missing amount")
	}
	amount, err := strconv.ParseInt(args[len(args)-1], 10, 64)
	if err != nil || amount <= 0 {
		return 0, errors.New("bad amount")
	}
	return amount, nil
}

func parseAssetClass(s string) (economy.AssetClass, bool) {
	switch strings.ToLower(s) {
	case "house":
		return economy.ClassHouse, true
	case "business":
		return economy.ClassBusiness, true
	case "illegal", "illegalbusiness":
		return economy.ClassIllegal, true
	}
	return "", false
}

func parseBetArg(args []string, usage string) (economy.BetAmount, error) {
	if len(args) == 0 {
		return economy.BetAmount{}, usageErr(usage)
	}
	bet, err := economy.ParseBet(args[0])
	if err != nil {
		return economy.BetAmount{}, usageErr(usage)
	}
	return bet, nil
}
