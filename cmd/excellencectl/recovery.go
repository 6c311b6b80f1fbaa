package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/excellence-hub/excellence/internal/app"
	"github.com/spf13/cobra"
)

func newRecoveryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Inspect and resolve password recovery requests",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List pending recovery requests, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				requests, err := a.Recovery.ListRequests(cmd.Context(), a.Administrator)
				if err != nil {
					return err
				}
				if len(requests) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending recovery requests")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tDATE\tACCOUNT\tKEY")
				for _, n := range requests {
					id := n.RecoveryData.Identity()
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Date.Local().Format(time.DateTime), id.Describe(), id.AccountKey())
				}
				return tw.Flush()
			})
		},
	}

	unlock := &cobra.Command{
		Use:   "unlock <request-id>",
		Short: "Unlock the account named by a recovery request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				id, err := a.Recovery.UnlockRequest(cmd.Context(), a.Administrator, args[0])
				if err != nil {
					return fmt.Errorf("unlock %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "unlocked %s; password reset to default\n", id.Describe())
				return nil
			})
		},
	}

	cmd.AddCommand(list, unlock)
	return cmd
}

func newUnlockCmd(c *cli) *cobra.Command {
	var flags identityFlags
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Reset an account to its default password and clear its failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := flags.identity()
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(a *app.App) error {
				if err := a.Recovery.Unlock(cmd.Context(), a.Administrator, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "unlocked %s; password reset to default\n", id.Describe())
				return nil
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newAttemptsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attempts",
		Short: "Inspect failed-login counters",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts at or above the lockout threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				locked, err := a.Attempts.LockedAccounts(cmd.Context())
				if err != nil {
					return err
				}
				if len(locked) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "no accounts at or above %d failed attempts\n", a.Attempts.Threshold())
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tFAILED")
				for _, l := range locked {
					fmt.Fprintf(tw, "%s\t%d\n", l.AccountKey, l.FailedAttempts)
				}
				return tw.Flush()
			})
		},
	})
	return cmd
}
