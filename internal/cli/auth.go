package cli

import (
	"fmt"

	"planner-cli/internal/api"
	"planner-cli/internal/model"
	"planner-cli/internal/session"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in, and manage the stored session",
	}
	cmd.AddCommand(newAuthSignupCmd(app))
	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthVerifyCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthWhoamiCmd(app))
	return cmd
}

func newAuthSignupCmd(app *App) *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and send a one-time code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Email == "" || req.Fullname == "" {
				return fmt.Errorf("--email and --fullname are required")
			}
			client, _, err := loadClient(app, false)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := client.Register(ctx, req); err != nil {
				return err
			}
			userID, err := client.LookupUserByEmail(ctx, req.Email)
			if err != nil {
				return err
			}
			if err := client.SendOTP(ctx, userID, req.Email); err != nil {
				return err
			}
			// Remember who we're verifying so `auth verify` only needs the code.
			if err := app.sessionStore().SavePendingSignup(ctx, session.PendingSignup{UserID: userID, Email: req.Email}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created. A one-time code was sent to %s.\nRun `planner auth verify --code <code>` to finish.\n", req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Fullname, "fullname", "", "Full name")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	cmd.Flags().StringVar(&req.Role, "role", "", "Role (optional)")
	cmd.Flags().StringVar(&req.ReasonForUse, "reason", "", "What you'll use the planner for (optional)")
	cmd.Flags().StringVar(&req.PhoneNo, "phone", "", "Phone number (optional)")

	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Send a one-time code to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			client, _, err := loadClient(app, false)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			userID, err := client.LookupUserByEmail(ctx, email)
			if err != nil {
				return err
			}
			if err := client.SendOTP(ctx, userID, email); err != nil {
				return err
			}
			if err := app.sessionStore().SavePendingSignup(ctx, session.PendingSignup{UserID: userID, Email: email}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "A one-time code was sent to %s.\nRun `planner auth verify --code <code>` to sign in.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}

func newAuthVerifyCmd(app *App) *cobra.Command {
	var (
		email string
		code  string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a one-time code and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" {
				return fmt.Errorf("--code is required")
			}
			client, _, err := loadClient(app, false)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store := app.sessionStore()

			pending, err := store.LoadPendingSignup(ctx)
			if err != nil {
				return err
			}
			userID := pending.UserID
			if email != "" && email != pending.Email {
				// Verifying a different address than the pending one; look it up fresh.
				userID, err = client.LookupUserByEmail(ctx, email)
				if err != nil {
					return err
				}
			} else {
				email = pending.Email
			}
			if userID == "" || email == "" {
				return fmt.Errorf("no pending sign-in (run `planner auth login --email <email>` first)")
			}

			token, err := client.VerifyOTP(ctx, userID, email, code)
			if err != nil {
				return err
			}
			if err := store.Save(ctx, model.Session{AccessToken: token, UserID: userID, Email: email}); err != nil {
				return err
			}
			if err := store.ClearPendingSignup(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (default: the pending sign-in)")
	cmd.Flags().StringVar(&code, "code", "", "One-time code from your inbox")
	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.sessionStore().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.sessionStore().Load(cmd.Context())
			if err != nil {
				return err
			}
			if !sess.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sess.Email, sess.UserID)
			return nil
		},
	}
}

