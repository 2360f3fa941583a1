package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lernkraft/lernkraft/internal/store"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		users, err := s.UserRepo().List(context.Background())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}

		fmt.Printf("%-36s  %-16s  %-24s  %-8s  %s\n", "ID", "Username", "Name", "Role", "Joined")
		fmt.Println(strings.Repeat("─", 100))
		for _, u := range users {
			fmt.Printf("%-36s  %-16s  %-24s  %-8s  %s\n",
				u.ID, u.Username, u.FullName, u.Role, u.JoinedDate.Format("2006-01-02"))
		}
		return nil
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username> <full name>",
	Short: "Create an account",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roleFlag, _ := cmd.Flags().GetString("role")
		role, err := parseRole(roleFlag)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		user := &store.User{
			Username: args[0],
			FullName: strings.Join(args[1:], " "),
			Role:     role,
		}
		if err := s.UserRepo().Add(context.Background(), user); err != nil {
			return fmt.Errorf("add user: %w", err)
		}
		fmt.Printf("Created %s account %q (%s)\n", user.Role, user.Username, user.ID)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		user, err := s.UserRepo().FindByUsername(ctx, args[0])
		if err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user %q not found", args[0])
		}
		if err := s.UserRepo().Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}

func parseRole(s string) (store.Role, error) {
	switch strings.ToUpper(s) {
	case "ADMIN":
		return store.RoleAdmin, nil
	case "TEACHER":
		return store.RoleTeacher, nil
	case "STUDENT", "":
		return store.RoleStudent, nil
	default:
		return "", fmt.Errorf("invalid role %q (want ADMIN, TEACHER or STUDENT)", s)
	}
}

// openStore resolves the DB path and opens the store for CLI commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	usersAddCmd.Flags().StringP("role", "r", "STUDENT", "Account role: ADMIN, TEACHER or STUDENT")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}
