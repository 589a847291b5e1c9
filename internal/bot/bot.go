package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Leo-Carroll/EconBot/internal/casino"
	"github.com/Leo-Carroll/EconBot/internal/config"
	"github.com/Leo-Carroll/EconBot/internal/economy"
)

const handlerTimeout = 15 * time.Second

// Bot wires the Discord gateway to the economy and casino services.
type Bot struct {
	session *discordgo.Session
	econ    *economy.Service
	casino  *casino.Service
	log     *slog.Logger

	prefix   string
	admins   map[string]bool
	shutdown func()
}

// New builds the bot but does not open the gateway connection. shutdown is
// invoked when an admin issues the shutdown command.
func New(cfg config.BotConfig, econ *economy.Service, cas *casino.Service, logger *slog.Logger, shutdown func()) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	admins := make(map[string]bool, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = true
	}
	b := &Bot{
		session:  session,
		econ:     econ,
		casino:   cas,
		log:      logger,
		prefix:   cfg.CommandPrefix,
		admins:   admins,
		shutdown: shutdown,
	}
	session.AddHandler(b.onMessage)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Run opens the gateway and blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	b.log.Info("gateway connected")
	<-ctx.Done()
	return b.session.Close()
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	cmd, err := Parse(b.prefix, m.Content, mentionIDs(m.Mentions))
	if errors.Is(err, ErrNotCommand) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if ensureErr := b.econ.EnsureAccount(ctx, m.Author.ID, m.Author.Username); ensureErr != nil {
		b.log.Error("ensure account", "user", m.Author.ID, "err", ensureErr)
	}
	if err != nil {
		var usage *UsageError
		if errors.As(err, &usage) {
			b.reply(m, "Usage: "+b.prefix+usage.Usage)
		}
		// unknown verbs are ignored, same as any other chatter
		return
	}

	b.log.Info("command", "user", m.Author.ID, "cmd", cmd.name())
	if err := b.dispatch(ctx, s, m, cmd); err != nil {
		b.reply(m, domainMessage(err))
		if !isDomainErr(err) {
			b.log.Error("command failed", "user", m.Author.ID, "cmd", cmd.name(), "err", err)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, cmd Command) error {
	userID := m.Author.ID
	switch c := cmd.(type) {
	case HelpCmd:
		return b.replyEmbed(m, helpEmbed(b.prefix))

	case WorkCmd:
		res, err := b.econ.Work(ctx, userID)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("You worked %d hours and earned $%d! You now have $%d.",
			res.HoursWorked, res.Payout, res.NewBalance))
	case JobsCmd:
		b.reply(m, jobsMessage())
	case GetJobCmd:
		title, err := b.econ.GetJob(ctx, userID, c.Job)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("Congratulations! You are now a %s.", title))
	case QuitJobCmd:
		if err := b.econ.QuitJob(ctx, userID); err != nil {
			return err
		}
		b.reply(m, "You quit your job.")
	case PromoteCmd:
		res, err := b.econ.Promote(ctx, userID)
		if err != nil {
			return err
		}
		if res.Promoted {
			b.reply(m, fmt.Sprintf("You have been promoted to %s!", res.Title))
		} else {
			b.reply(m, fmt.Sprintf("You need to work %d more times for a promotion.", res.Remaining))
		}

	case ViewCmd:
		target := c.Target
		if target == "" {
			target = userID
		}
		profile, err := b.econ.Profile(ctx, target)
		if err != nil {
			return err
		}
		return b.replyEmbed(m, profileEmbed(profile))
	case LeaderboardCmd:
		rows, err := b.econ.Leaderboard(ctx, c.Limit)
		if err != nil {
			return err
		}
		return b.replyEmbed(m, leaderboardEmbed(rows))
	case PassiveCmd:
		res, err := b.econ.Passive(ctx, userID)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("You collected $%d of passive income for %d hours. You now have $%d.",
			res.Income, res.Hours, res.NewBalance)
		for _, drug := range res.Drugs {
			msg += fmt.Sprintf("\nYour operation produced 1x **%s**.", drug)
		}
		b.reply(m, msg)

	case HouseShopCmd:
		return b.replyComponents(m, "Pick a house to buy:",
			assetSelect("select_house", "Select a house", economy.ClassHouse))
	case BizShopCmd:
		return b.replyComponents(m, "Pick a business to buy:",
			assetSelect("select_business", "Select a business", economy.ClassBusiness))
	case IllegalShopCmd:
		open, err := b.econ.IllegalShopOpen(ctx, userID)
		if err != nil {
			return err
		}
		if !open {
			return economy.ErrShopLocked
		}
		return b.replyComponents(m, "Pick an illegal business to buy:",
			assetSelect("select_illegal_business", "Select an illegal business", economy.ClassIllegal))

	case GiveCmd:
		res, err := b.econ.Transfer(ctx, userID, c.Target, c.Amount)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("You gave $%d to %s. You now have $%d.",
			res.Amount, res.RecipientName, res.NewBalance))
	case AdminGiveCmd:
		if !b.admins[userID] {
			return economy.ErrPermissionDenied
		}
		balance, err := b.econ.AdminGive(ctx, c.Target, c.Amount)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("Gave $%d. Their balance is now $%d.", c.Amount, balance))
	case AdminRemoveCmd:
		if !b.admins[userID] {
			return economy.ErrPermissionDenied
		}
		balance, err := b.econ.AdminRemove(ctx, c.Target, c.Amount)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("Removed $%d. Their balance is now $%d.", c.Amount, balance))
	case AdminRemoveAssetCmd:
		if !b.admins[userID] {
			return economy.ErrPermissionDenied
		}
		name, err := b.econ.AdminRemoveAsset(ctx, c.Target, c.Class, c.Index)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("Removed the **%s** from that user.", name))

	case BlackjackCmd:
		view, err := b.casino.StartBlackjack(ctx, userID, c.Bet)
		if err != nil {
			return err
		}
		return b.replyEmbedComponents(m, blackjackEmbed(view), blackjackButtons())
	case CoinflipCmd:
		wager, err := b.casino.StartCoinflip(ctx, userID, c.Bet)
		if err != nil {
			return err
		}
		return b.replyEmbedComponents(m, &discordgo.MessageEmbed{
			Title:       "Coinflip",
			Description: fmt.Sprintf("$%d on the line. Call it!", wager),
			Color:       colorInfo,
		}, coinflipButtons())
	case HigherLowerCmd:
		wager, err := b.casino.StartHigherLower(ctx, userID, c.Bet)
		if err != nil {
			return err
		}
		return b.replyEmbedComponents(m, &discordgo.MessageEmbed{
			Title: "Higher or Lower",
			Description: fmt.Sprintf("A number from 1 to 100 is coming. $%d says it lands higher or lower than **%d**.",
				wager, casino.HigherLowerReference),
			Color: colorInfo,
		}, higherLowerButtons())
	case RouletteCmd:
		channelID := m.ChannelID
		wager, err := b.casino.PlayRoulette(ctx, userID, c.Bet, c.Choice, func(res casino.RouletteResult, err error) {
			if err != nil {
				s.ChannelMessageSend(channelID, "The roulette table jammed. Your bet was not settled, ping an admin.")
				return
			}
			if res.Won {
				s.ChannelMessageSend(channelID, fmt.Sprintf("The roulette landed on **%d**! You won $%d!", res.Pocket, res.Payout))
			} else {
				s.ChannelMessageSend(channelID, fmt.Sprintf("The roulette landed on **%d**. You lost $%d!", res.Pocket, res.Wager))
			}
		})
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("Roulette spinning! You bet $%d on %s...", wager, c.Choice))
	case SlotsCmd:
		res, err := b.casino.PlaySlots(ctx, userID, c.Bet)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("🎰   %s | %s | %s   🎰\n", res.Reels[0], res.Reels[1], res.Reels[2])
		switch {
		case res.Payout == res.Wager*5:
			line += fmt.Sprintf("Jackpot! You won $%d!", res.Payout)
		case res.Payout > 0:
			line += fmt.Sprintf("Nice! Two symbols matched! You won $%d!", res.Payout)
		default:
			line += fmt.Sprintf("No match. You lost $%d.", res.Wager)
		}
		b.reply(m, line)

	case UseCmd:
		res, err := b.econ.UseDrug(ctx, userID, c.Item)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("You used **%s**! Effect active until %s.",
			res.Drug, res.ExpiresAt.Format("15:04:05")))

	case LoanOfferCmd:
		offer, err := b.econ.OfferLoan(ctx, userID, c.Borrower, c.Amount, c.InterestPct, c.Days)
		if err != nil {
			return err
		}
		embed := &discordgo.MessageEmbed{
			Title: "Loan Offer",
			Description: fmt.Sprintf("%s wants to loan you $%d at %.1f%% interest, due in %d days.",
				m.Author.Username, offer.Amount, offer.InterestPct, offer.Days),
			Color: colorInfo,
		}
		_, err = s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
			Content:    fmt.Sprintf("<@%s>", offer.BorrowerID),
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: loanOfferButtons(),
		})
		if err != nil {
			return err
		}
		b.reply(m, "Loan offer sent. Waiting for their response.")
	case RepayCmd:
		loan, err := b.econ.RepayLoan(ctx, userID, c.LoanID)
		if err != nil {
			return err
		}
		b.reply(m, fmt.Sprintf("You repaid loan #%d in full ($%d to %s).",
			loan.ID, loan.TotalOwed(), loan.LenderName))
	case MyLoansCmd:
		loans, err := b.econ.LoansGiven(ctx, userID)
		if err != nil {
			return err
		}
		return b.replyEmbed(m, loansEmbed("Loans You Have Given", loans, false))
	case MyDebtsCmd:
		loans, err := b.econ.LoansOwed(ctx, userID)
		if err != nil {
			return err
		}
		return b.replyEmbed(m, loansEmbed("Loans You Owe", loans, true))

	case ShutdownCmd:
		if !b.admins[userID] {
			return economy.ErrPermissionDenied
		}
		b.reply(m, "Shutting down.")
		b.shutdown()
	}
	return nil
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	userID := interactionUserID(i)
	if userID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	data := i.MessageComponentData()
	var err error
	switch data.CustomID {
	case "hit":
		err = b.blackjackHit(ctx, s, i, userID)
	case "stand":
		err = b.blackjackStand(ctx, s, i, userID)
	case "heads", "tails":
		err = b.coinflipPick(ctx, s, i, userID, data.CustomID)
	case "higher", "lower":
		err = b.higherLowerPick(ctx, s, i, userID, data.CustomID == "higher")
	case "accept_loan":
		err = b.acceptLoan(ctx, s, i, userID)
	case "decline_loan":
		err = b.declineLoan(s, i, userID)
	case "select_house":
		err = b.buySelected(ctx, s, i, userID, economy.ClassHouse, data.Values)
	case "select_business":
		err = b.buySelected(ctx, s, i, userID, economy.ClassBusiness, data.Values)
	case "select_illegal_business":
		err = b.buySelected(ctx, s, i, userID, economy.ClassIllegal, data.Values)
	default:
		return
	}
	if err != nil {
		respondMessage(s, i, domainMessage(err))
		if !isDomainErr(err) {
			b.log.Error("interaction failed", "user", userID, "component", data.CustomID, "err", err)
		}
	}
}

func (b *Bot) blackjackHit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	view, err := b.casino.HitBlackjack(ctx, userID)
	if err != nil {
		return err
	}
	if view.Done {
		return updateMessage(s, i, fmt.Sprintf(
			"You drew %d and busted with %d! You lost $%d. Dealer wins.",
			view.Card, view.PlayerTotal, view.Wager))
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{blackjackEmbed(view)},
			Components: blackjackButtons(),
		},
	})
}

func (b *Bot) blackjackStand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	view, err := b.casino.StandBlackjack(ctx, userID)
	if err != nil {
		return err
	}
	var result string
	switch view.Outcome {
	case casino.OutcomeWin:
		result = fmt.Sprintf("You win $%d! Your total: %d, Dealer total: %d",
			view.Payout, view.PlayerTotal, view.DealerTotal)
	case casino.OutcomeLoss:
		result = fmt.Sprintf("Dealer wins! You lost $%d. Your total: %d, Dealer total: %d",
			view.Wager, view.PlayerTotal, view.DealerTotal)
	default:
		result = fmt.Sprintf("It's a tie! Your bet of $%d has been returned. Your total: %d, Dealer total: %d",
			view.Wager, view.PlayerTotal, view.DealerTotal)
	}
	return updateMessage(s, i, result)
}

func (b *Bot) coinflipPick(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID, call string) error {
	res, err := b.casino.ResolveCoinflip(ctx, userID, call)
	if err != nil {
		return err
	}
	if res.Won {
		return updateMessage(s, i, fmt.Sprintf("The coin landed on **%s**! You won $%d.", res.Side, res.Payout))
	}
	return updateMessage(s, i, fmt.Sprintf("The coin landed on **%s**. You lost $%d.", res.Side, res.Wager))
}

func (b *Bot) higherLowerPick(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string, guessHigher bool) error {
	res, err := b.casino.ResolveHigherLower(ctx, userID, guessHigher)
	if err != nil {
		return err
	}
	switch res.Outcome {
	case casino.OutcomeWin:
		return updateMessage(s, i, fmt.Sprintf(
			"You guessed correctly! The number was **%d**. You won $%d!", res.Drawn, res.Payout))
	case casino.OutcomePush:
		return updateMessage(s, i, fmt.Sprintf(
			"It landed exactly on **%d**! Your bet of $%d is returned.", res.Drawn, res.Wager))
	default:
		return updateMessage(s, i, fmt.Sprintf(
			"You guessed wrong! The number was **%d**. You lost $%d.", res.Drawn, res.Wager))
	}
}

func (b *Bot) acceptLoan(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	loan, err := b.econ.AcceptLoan(ctx, userID)
	if err != nil {
		return err
	}
	return updateMessage(s, i, fmt.Sprintf(
		"Loan accepted! You received $%d. Repay $%d by %s with `%srepay %d`.",
		loan.Principal, loan.TotalOwed(), loan.DueAt.Format("Jan 2 15:04"), b.prefix, loan.ID))
}

func (b *Bot) declineLoan(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	if _, err := b.econ.DeclineLoan(userID); err != nil {
		return err
	}
	return updateMessage(s, i, "Loan offer declined.")
}

func (b *Bot) buySelected(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string, class economy.AssetClass, values []string) error {
	if len(values) == 0 {
		return economy.ErrInvalidAsset
	}
	idx, err := strconv.Atoi(values[0])
	if err != nil {
		return economy.ErrInvalidAsset
	}
	res, err := b.econ.BuyAsset(ctx, userID, class, idx)
	if err != nil {
		return err
	}
	respondMessage(s, i, fmt.Sprintf("You bought the **%s** for $%d! You now have $%d.",
		res.Name, res.Price, res.NewBalance))
	return nil
}

func (b *Bot) reply(m *discordgo.MessageCreate, content string) {
	if _, err := b.session.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		b.log.Error("send reply", "channel", m.ChannelID, "err", err)
	}
}

func (b *Bot) replyEmbed(m *discordgo.MessageCreate, embed *discordgo.MessageEmbed) error {
	_, err := b.session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Reference: m.Reference(),
	})
	return err
}

func (b *Bot) replyComponents(m *discordgo.MessageCreate, content string, components []discordgo.MessageComponent) error {
	_, err := b.session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:    content,
		Components: components,
		Reference:  m.Reference(),
	})
	return err
}

func (b *Bot) replyEmbedComponents(m *discordgo.MessageCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	_, err := b.session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Reference:  m.Reference(),
	})
	return err
}

func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	})
}

func respondMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func mentionIDs(users []*discordgo.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
