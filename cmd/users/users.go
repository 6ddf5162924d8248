// Package users manages the data users registered under an account.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
	"pvillar/hogarfin/internal/accounts"
	"pvillar/hogarfin/internal/tenant"
)

var (
	name   string
	emoji  string
	userID string
)

// Cmd represents the users command.
var Cmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the household members of an account",
	Long: `Each account holds one or more data users (household members). A data
user's id is derived from its name at creation and never changes; renaming
only updates the display name, so stored history stays attached.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a data user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd.Context(), func(ctx context.Context, reg *accounts.Registry, email string) error {
			user, err := reg.AddDataUser(ctx, email, name, emoji)
			if err != nil {
				return describeConflict(err)
			}
			fmt.Printf("Added %s %s (id %s)\n", user.Emoji, user.Name, user.ID)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's data users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd.Context(), func(ctx context.Context, reg *accounts.Registry, email string) error {
			users, err := reg.ListDataUsers(ctx, email)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println("No data users registered (add one with 'users add')")
				return nil
			}
			for _, u := range users {
				fmt.Printf("%s  %-20s id %s  since %s\n", u.Emoji, u.Name, u.ID, u.Created)
			}
			return nil
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Change a data user's display name or emoji",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd.Context(), func(ctx context.Context, reg *accounts.Registry, email string) error {
			if err := reg.RenameDataUser(ctx, email, userID, name, emoji); err != nil {
				return describeConflict(err)
			}
			fmt.Printf("Data user %s renamed\n", userID)
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a data user from the account",
	Long: `Removes the data user from the registry. Stored history under the user's
data key is left in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(cmd.Context(), func(ctx context.Context, reg *accounts.Registry, email string) error {
			if err := reg.RemoveDataUser(ctx, email, userID); err != nil {
				return err
			}
			fmt.Printf("Data user %s removed\n", userID)
			return nil
		})
	},
}

func init() {
	addCmd.Flags().StringVarP(&name, "name", "n", "", "Display name (required)")
	addCmd.Flags().StringVarP(&emoji, "emoji", "e", "", "Emoji shown next to the name")
	_ = addCmd.MarkFlagRequired("name")

	renameCmd.Flags().StringVar(&userID, "id", "", "Data user id (required)")
	renameCmd.Flags().StringVarP(&name, "name", "n", "", "New display name")
	renameCmd.Flags().StringVarP(&emoji, "emoji", "e", "", "New emoji")
	_ = renameCmd.MarkFlagRequired("id")

	removeCmd.Flags().StringVar(&userID, "id", "", "Data user id (required)")
	_ = removeCmd.MarkFlagRequired("id")

	Cmd.AddCommand(addCmd, listCmd, renameCmd, removeCmd)
}

func withRegistry(ctx context.Context, fn func(context.Context, *accounts.Registry, string) error) error {
	c, err := root.App(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, c.GetRegistry(), c.GetConfig().Account.Email)
}

// describeConflict rewords an id collision so the caller sees both names.
func describeConflict(err error) error {
	var conflict *tenant.ConflictError
	if errors.As(err, &conflict) {
		return fmt.Errorf("name %q collides with existing data user %q (both map to id %s); pick another name",
			conflict.Name, conflict.Existing, conflict.ID)
	}
	return err
}
