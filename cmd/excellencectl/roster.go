package main

import (
	"encoding/json"
	"fmt"

	"github.com/excellence-hub/excellence/internal/app"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRosterCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show and replace the selectable name lists",
	}

	var (
		listType    string
		listRole    string
		listSubRole string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the names for an account type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseAccountType(listType)
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(a *app.App) error {
				names, err := a.Roster.Names(cmd.Context(), t, listRole, listSubRole)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&listType, "type", "", "account type: student, master or mhs (required)")
	list.Flags().StringVar(&listRole, "role", "", "MHS role filter")
	list.Flags().StringVar(&listSubRole, "sub-role", "", "MHS sub-role filter")
	_ = list.MarkFlagRequired("type")

	var (
		importType string
		importFile string
	)
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Replace a roster from a JSON file",
		Long: `Replaces the stored roster for one account type.

For student and master the file holds a JSON array of names. For mhs it holds
an array of {"name", "role", "subRole"} objects.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseAccountType(importType)
			if err != nil {
				return err
			}
			raw, err := afero.ReadFile(c.fs, importFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", importFile, err)
			}

			return c.withApp(cmd, func(a *app.App) error {
				if t == models.AccountTypeMHS {
					var users []models.MHSUser
					if err := json.Unmarshal(raw, &users); err != nil {
						return fmt.Errorf("failed to parse %s: %w", importFile, err)
					}
					if err := a.Roster.ReplaceMHSUsers(cmd.Context(), users); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "imported %d mhs users\n", len(users))
					return nil
				}

				var names []string
				if err := json.Unmarshal(raw, &names); err != nil {
					return fmt.Errorf("failed to parse %s: %w", importFile, err)
				}
				if err := a.Roster.ReplaceNames(cmd.Context(), t, names); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s names\n", len(names), t)
				return nil
			})
		},
	}
	importCmd.Flags().StringVar(&importType, "type", "", "account type: student, master or mhs (required)")
	importCmd.Flags().StringVar(&importFile, "file", "", "path to the JSON file (required)")
	_ = importCmd.MarkFlagRequired("type")
	_ = importCmd.MarkFlagRequired("file")

	cmd.AddCommand(list, importCmd)
	return cmd
}
