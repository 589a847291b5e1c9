package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Leo-Carroll/EconBot/internal/casino"
	"github.com/Leo-Carroll/EconBot/internal/economy"
)

const (
	colorInfo    = 0x3498db
	colorSuccess = 0x00ae86
	colorDanger  = 0xe74c3c
)

func helpEmbed(prefix string) *discordgo.MessageEmbed {
	p := prefix
	return &discordgo.MessageEmbed{
		Title:       "Help Menu",
		Description: "Here are all available commands:",
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👔 Jobs", Value: strings.Join([]string{
				"`" + p + "jobs` - View available jobs",
				"`" + p + "getjob <job>` - Get an entry-level job",
				"`" + p + "quitjob` - Quit your current job",
				"`" + p + "work` - Work at your job to earn money",
				"`" + p + "promote` - Check or get a promotion",
			}, "\n")},
			{Name: "💰 Economy", Value: strings.Join([]string{
				"`" + p + "view` - View your money, job, and assets",
				"`" + p + "leaderboard` - See the richest players",
				"`" + p + "givemoney <@user> <amount>` - Give money to a player",
			}, "\n")},
			{Name: "🏠 Assets", Value: strings.Join([]string{
				"`" + p + "houseshop` - Buy houses for passive income",
				"`" + p + "businessshop` - Buy legal businesses",
				"`" + p + "illegalbusinessshop` - Buy illegal businesses (requires $1,000,000)",
				"`" + p + "passive` - Collect your passive income (hourly)",
			}, "\n")},
			{Name: "💸 Loans", Value: strings.Join([]string{
				"`" + p + "loan <@user> <amount> <interest %> <days>` - Offer a loan",
				"`" + p + "myloans` - View loans you have given",
				"`" + p + "mydebts` - View loans you owe",
				"`" + p + "repay <loan id>` - Repay a loan you owe",
			}, "\n")},
			{Name: "🎲 Casino", Value: strings.Join([]string{
				"`" + p + "blackjack <bet>` - Play Blackjack",
				"`" + p + "coinflip <bet>` - Play Coinflip (Heads or Tails)",
				"`" + p + "higherorlower <bet>` - Play Higher or Lower",
				"`" + p + "roulette <bet> <choice>` - Play Roulette (number, red, black, even, odd)",
				"`" + p + "slots <bet>` - Play Slots",
			}, "\n")},
			{Name: "💊 Drugs", Value: strings.Join([]string{
				"Earn drugs from illegal businesses, then `" + p + "use <drug>`:",
				"`Weed` - +10% passive income (1h)",
				"`Cocaine` - +25% work payout (1h)",
				"`LSD` - +20% win chance in coinflip (1h)",
				"`Meth` - -10 min work cooldown (1h)",
			}, "\n")},
		},
	}
}

func profileEmbed(p economy.Profile) *discordgo.MessageEmbed {
	houses := "None"
	if len(p.Houses) > 0 {
		var b strings.Builder
		for i, h := range p.Houses {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "🏠 %s", h.Name)
		}
		houses = b.String()
	}
	businesses := "None"
	if len(p.Businesses) > 0 {
		var b strings.Builder
		for i, biz := range p.Businesses {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "🏢 %s", biz.Name)
		}
		businesses = b.String()
	}
	illegal := "None"
	if len(p.IllegalHoldings) > 0 {
		var b strings.Builder
		for i, ib := range p.IllegalHoldings {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "🕵️ %s", ib.Name)
		}
		illegal = b.String()
	}
	inventory := "Empty"
	if len(p.Inventory) > 0 {
		var b strings.Builder
		for i, item := range p.Inventory {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "🎒 **%s** x%d", item.Name, item.Quantity)
		}
		inventory = b.String()
	}
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Profile", p.Account.Name),
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Money", Value: fmt.Sprintf("$%d", p.Account.Balance), Inline: true},
			{Name: "👔 Job", Value: p.JobTitle, Inline: true},
			{Name: "💵 Passive Income/hr", Value: fmt.Sprintf("$%d", p.PassiveHourly), Inline: true},
			{Name: "🏠 Houses", Value: houses},
			{Name: "🏢 Businesses", Value: businesses},
			{Name: "🕵️ Illegal Businesses", Value: illegal},
			{Name: "🎒 Inventory", Value: inventory},
		},
	}
}

func leaderboardEmbed(rows []economy.LeaderboardRow) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "**%d.** %s - $%d\n", r.Rank, r.Name, r.Balance)
	}
	if b.Len() == 0 {
		b.WriteString("Nobody has any money yet.")
	}
	return &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: b.String(),
		Color:       colorSuccess,
	}
}

func jobsMessage() string {
	var b strings.Builder
	for tier := 1; tier < len(economy.Jobs); tier++ {
		ranks := economy.Jobs[tier]
		parts := make([]string, len(ranks))
		for i, r := range ranks {
			parts[i] = fmt.Sprintf("%s ($%d/hr)", r.Title, r.HourlyPay)
		}
		b.WriteString(strings.Join(parts, " -> "))
		b.WriteString("\n")
	}
	b.WriteString("\nUse `getjob <job>` with an entry-level job to start working.")
	return b.String()
}

func blackjackEmbed(v casino.BlackjackView) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Blackjack",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Total", Value: fmt.Sprintf("%d", v.PlayerTotal), Inline: true},
			{Name: "Dealer's Total", Value: fmt.Sprintf("%d", v.DealerTotal), Inline: true},
		},
	}
}

func buttonRow(buttons ...discordgo.Button) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		btn := b
		row.Components = append(row.Components, btn)
	}
	return []discordgo.MessageComponent{row}
}

func blackjackButtons() []discordgo.MessageComponent {
	return buttonRow(
		discordgo.Button{CustomID: "hit", Label: "Hit", Style: discordgo.PrimaryButton},
		discordgo.Button{CustomID: "stand", Label: "Stand", Style: discordgo.SecondaryButton},
	)
}

func coinflipButtons() []discordgo.MessageComponent {
	return buttonRow(
		discordgo.Button{CustomID: "heads", Label: "Heads", Style: discordgo.PrimaryButton},
		discordgo.Button{CustomID: "tails", Label: "Tails", Style: discordgo.SecondaryButton},
	)
}

func higherLowerButtons() []discordgo.MessageComponent {
	return buttonRow(
		discordgo.Button{CustomID: "higher", Label: "Higher", Style: discordgo.PrimaryButton},
		discordgo.Button{CustomID: "lower", Label: "Lower", Style: discordgo.SecondaryButton},
	)
}

func loanOfferButtons() []discordgo.MessageComponent {
	return buttonRow(
		discordgo.Button{CustomID: "accept_loan", Label: "Accept", Style: discordgo.SuccessButton},
		discordgo.Button{CustomID: "decline_loan", Label: "Decline", Style: discordgo.DangerButton},
	)
}

func assetSelect(customID, placeholder string, class economy.AssetClass) []discordgo.MessageComponent {
	var options []discordgo.SelectMenuOption
	switch class {
	case economy.ClassHouse:
		for i, h := range economy.Houses {
			options = append(options, discordgo.SelectMenuOption{
				Label:       h.Name,
				Value:       fmt.Sprintf("%d", i),
				Description: fmt.Sprintf("$%d, $%d/hr", h.Price, h.HourlyIncome),
			})
		}
	case economy.ClassBusiness:
		for i, b := range economy.Businesses {
			options = append(options, discordgo.SelectMenuOption{
				Label:       b.Name,
				Value:       fmt.Sprintf("%d", i),
				Description: fmt.Sprintf("$%d, $%d/hr", b.Price, b.HourlyIncome),
			})
		}
	case economy.ClassIllegal:
		for i, ib := range economy.IllegalBusinesses {
			options = append(options, discordgo.SelectMenuOption{
				Label:       ib.Name,
				Value:       fmt.Sprintf("%d", i),
				Description: fmt.Sprintf("$%d, produces %s", ib.Price, ib.Produces),
			})
		}
	}
	menu := discordgo.SelectMenu{
		CustomID:    customID,
		Placeholder: placeholder,
		Options:     options,
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{menu},
	}}
}

func loansEmbed(title string, loans []economy.Loan, owedView bool) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, l := range loans {
		counterparty := l.BorrowerName
		if owedView {
			counterparty = l.LenderName
		}
		fmt.Fprintf(&b, "**#%d** %s: $%d at %.1f%% (owes $%d), due %s\n",
			l.ID, counterparty, l.Principal, l.InterestPct, l.TotalOwed(),
			l.DueAt.Format("Jan 2 15:04"))
	}
	if b.Len() == 0 {
		b.WriteString("None.")
	}
	return &discordgo.MessageEmbed{Title: title, Description: b.String(), Color: colorInfo}
}
