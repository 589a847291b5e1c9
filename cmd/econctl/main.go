package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cl "github.com/Leo-Carroll/EconBot/internal/cli"
	"github.com/Leo-Carroll/EconBot/internal/config"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "econctl",
		Short:        "Economy bot operator CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newHealthCmd(&apiBase),
		newLeaderboardCmd(&apiBase),
		newProfileCmd(&apiBase),
		newLoansCmd(&apiBase),
		newDebtsCmd(&apiBase),
		newCatalogCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newHealthCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the API is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			if err := newClient(apiBase).Health(ctx); err != nil {
				return err
			}
			printSuccess("API is healthy.")
			return nil
		},
	}
}

func newLeaderboardCmd(apiBase *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the richest players",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			rows, err := newClient(apiBase).Leaderboard(ctx, limit)
			if err != nil {
				return err
			}
			printLeaderboard(rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of rows")
	return cmd
}

func newProfileCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <user id>",
		Short: "Show a player profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			profile, err := newClient(apiBase).Profile(ctx, args[0])
			if err != nil {
				return err
			}
			printProfile(profile)
			return nil
		},
	}
}

func newLoansCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "loans <user id>",
		Short: "List open loans the user has given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			loans, err := newClient(apiBase).LoansGiven(ctx, args[0])
			if err != nil {
				return err
			}
			printLoans(loans, false)
			return nil
		},
	}
}

func newDebtsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "debts <user id>",
		Short: "List open loans the user owes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			loans, err := newClient(apiBase).LoansOwed(ctx, args[0])
			if err != nil {
				return err
			}
			printLoans(loans, true)
			return nil
		},
	}
}

func newCatalogCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the shop catalogs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "houses",
			Short: "List houses",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := cmdContext(cmd)
				defer cancel()
				houses, err := newClient(apiBase).CatalogHouses(ctx)
				if err != nil {
					return err
				}
				printAssets("Houses", houses)
				return nil
			},
		},
		&cobra.Command{
			Use:   "businesses",
			Short: "List businesses",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := cmdContext(cmd)
				defer cancel()
				businesses, err := newClient(apiBase).CatalogBusinesses(ctx)
				if err != nil {
					return err
				}
				printAssets("Businesses", businesses)
				return nil
			},
		},
		&cobra.Command{
			Use:   "illegal",
			Short: "List illegal businesses",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := cmdContext(cmd)
				defer cancel()
				minimum, businesses, err := newClient(apiBase).CatalogIllegal(ctx)
				if err != nil {
					return err
				}
				printWarn("Requires a balance of $" + strconv.FormatInt(minimum, 10))
				printIllegal(businesses)
				return nil
			},
		},
		&cobra.Command{
			Use:   "drugs",
			Short: "List drugs and their effects",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := cmdContext(cmd)
				defer cancel()
				drugs, err := newClient(apiBase).CatalogDrugs(ctx)
				if err != nil {
					return err
				}
				printDrugs(drugs)
				return nil
			},
		},
	)
	return cmd
}
