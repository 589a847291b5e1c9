package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/Leo-Carroll/EconBot/internal/economy"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printLeaderboard(rows []economy.LeaderboardRow) {
	accent.Println("Leaderboard")
	if len(rows) == 0 {
		neutral.Println("  (empty)")
		return
	}
	for _, r := range rows {
		neutral.Printf("  %2d. %-24s $%d\n", r.Rank, r.Name, r.Balance)
	}
}

func printProfile(p economy.Profile) {
	accent.Printf("%s\n", p.Account.Name)
	neutral.Printf("  Balance:         $%d\n", p.Account.Balance)
	neutral.Printf("  Job:             %s\n", p.JobTitle)
	neutral.Printf("  Passive income:  $%d/hr\n", p.PassiveHourly)
	if len(p.Houses) > 0 {
		neutral.Println("  Houses:")
		for _, h := range p.Houses {
			neutral.Printf("    - %s ($%d/hr)\n", h.Name, h.HourlyIncome)
		}
	}
	if len(p.Businesses) > 0 {
		neutral.Println("  Businesses:")
		for _, b := range p.Businesses {
			neutral.Printf("    - %s ($%d/hr)\n", b.Name, b.HourlyIncome)
		}
	}
	if len(p.IllegalHoldings) > 0 {
		neutral.Println("  Illegal businesses:")
		for _, ib := range p.IllegalHoldings {
			neutral.Printf("    - %s\n", ib.Name)
		}
	}
	if len(p.Inventory) > 0 {
		neutral.Println("  Inventory:")
		for _, item := range p.Inventory {
			neutral.Printf("    - %s x%d\n", item.Name, item.Quantity)
		}
	}
	if len(p.ActiveEffects) > 0 {
		neutral.Println("  Active effects:")
		for _, e := range p.ActiveEffects {
			neutral.Printf("    - %s until %s\n", e.Kind, e.ExpiresAt.Format("15:04:05"))
		}
	}
}

func printLoans(loans []economy.Loan, owedView bool) {
	if owedView {
		accent.Println("Debts")
	} else {
		accent.Println("Loans given")
	}
	if len(loans) == 0 {
		neutral.Println("  (none)")
		return
	}
	for _, l := range loans {
		counterparty := l.BorrowerName
		if owedView {
			counterparty = l.LenderName
		}
		neutral.Printf("  #%-4d %-20s $%d at %.1f%% (owes $%d), due %s\n",
			l.ID, counterparty, l.Principal, l.InterestPct, l.TotalOwed(),
			l.DueAt.Format("2006-01-02 15:04"))
	}
}

func printAssets(title string, assets []economy.Asset) {
	accent.Println(title)
	for i, a := range assets {
		neutral.Printf("  %d. %-20s $%-10d $%d/hr\n", i, a.Name, a.Price, a.HourlyIncome)
	}
}

func printIllegal(businesses []economy.IllegalBusiness) {
	accent.Println("Illegal businesses")
	for i, b := range businesses {
		neutral.Printf("  %d. %-16s $%-10d produces %s\n", i, b.Name, b.Price, b.Produces)
	}
}

func printDrugs(drugs []economy.Drug) {
	accent.Println("Drugs")
	for _, d := range drugs {
		neutral.Printf("  %-8s $%-8d %s\n", d.Name, d.Price, d.Description)
	}
	fmt.Println()
	warn.Println("Drugs come from illegal businesses; there is no cash shop for them.")
}
