package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/model"
)

// friendly maps core sentinels to the inline messages the console shows.
func friendly(err error) error {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		return errors.New("invalid credentials")
	case errors.Is(err, errs.ErrPendingApproval):
		return errors.New("account pending admin approval")
	case errors.Is(err, errs.ErrEmailExists):
		return errors.New("email already exists")
	default:
		return err
	}
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and start a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.auth.Login(email, password)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", p.Name, p.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ok := a.session.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", p.Name, p.Email, p.Role)
			return nil
		},
	}
}

func newSignupCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Request a new account (requires admin approval)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := a.auth.Signup(name, email, password)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user access and approvals (admin only)",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.gate(model.RoleAdmin)
		},
	}
	cmd.AddCommand(newUsersListCmd(a), newUsersAddCmd(a), newUsersApproveCmd(a), newUsersRejectCmd(a))
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	var pending, approved bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var accounts []model.Account
			switch {
			case pending:
				accounts = a.directory.Pending()
			case approved:
				accounts = a.directory.Approved()
			default:
				accounts = a.directory.Accounts()
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS\tREQUESTED")
			for _, u := range accounts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					u.ID, u.Name, u.Email, u.Status, u.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "only accounts awaiting approval")
	cmd.Flags().BoolVar(&approved, "approved", false, "only approved accounts")
	cmd.MarkFlagsMutuallyExclusive("pending", "approved")
	return cmd
}

func newUsersAddCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account approved immediately",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.AddUser(name, email, password); err != nil {
				return friendly(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "user added")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", arg)
	}
	return id, nil
}

func newUsersApproveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.directory.Approve(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "approved")
			return nil
		},
	}
}

func newUsersRejectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending request or remove a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.directory.Reject(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}
