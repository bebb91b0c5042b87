// Command endpagectl runs administrative tasks against The End Page
// database and mail relay.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"endpage/internal/config"
	"endpage/internal/database"
	"endpage/internal/logger"
	"endpage/internal/mailer"
	"endpage/internal/repository"
	"endpage/internal/services"
)

// env is what the subcommands operate on.
type env struct {
	users  services.UserServicer
	audit  services.AuditServicer
	sender mailer.Sender
	close  func() error
}

type opener func(ctx context.Context) (*env, error)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd(openEnv).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// openEnv connects to the configured database and mail relay.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, err
	}

	sender := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, logger.Named("mailer"))
	store := repository.New(manager.DB())
	audit := services.NewAuditService(store)
	notifier := services.NewNotificationService(sender, cfg.AppURL)

	return &env{
		users:  services.NewUserService(store, audit, notifier, cfg.PasswordMinEntropy),
		audit:  audit,
		sender: sender,
		close:  manager.Close,
	}, nil
}

func newRootCmd(open opener) *cobra.Command {
	var e *env

	root := &cobra.Command{
		Use:          "endpagectl",
		Short:        "Administer The End Page",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opened, err := open(cmd.Context())
			if err != nil {
				return err
			}
			e = opened
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e == nil || e.close == nil {
				return nil
			}
			return e.close()
		},
	}

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	rolesCmd := &cobra.Command{
		Use:   "roles <user-id> <role>...",
		Short: "Replace a user's roles",
		Long: `Replace the roles of a user. ROLE_USER is always kept, so

  endpagectl user roles 42 ROLE_ADMIN

grants admin rights and

  endpagectl user roles 42

revokes every extra role.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			user, err := e.users.UpdateRoles(id, args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d (%s) roles: %s\n", user.ID, user.Email, strings.Join(user.Roles, ", "))
			return nil
		},
	}

	reactivateCmd := &cobra.Command{
		Use:   "reactivate <user-id>",
		Short: "Reactivate a locked account and restore its attempts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			user, err := e.users.Reactivate(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d (%s) reactivated with %d attempts\n", user.ID, user.Email, user.CountAttempt)
			return nil
		},
	}

	auditCmd := &cobra.Command{
		Use:   "audit <user-id>",
		Short: "Print a user's audit trail, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			if _, err := e.users.GetUserByID(id); err != nil {
				return err
			}
			entries, err := e.audit.History(id)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tACTION\tRESOURCE\tIP\tCHANGES")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s/%d\t%s\t%s\n",
					entry.CreatedAt.UTC().Format(time.RFC3339), entry.Action,
					entry.ResourceType, entry.ResourceID, entry.IPAddress, entry.Changes)
			}
			return w.Flush()
		},
	}

	mailCmd := &cobra.Command{
		Use:   "mail",
		Short: "Check outgoing mail",
	}

	mailTestCmd := &cobra.Command{
		Use:   "test <email>",
		Short: "Send a test message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := mailer.Render("test.txt", struct{ SentAt string }{time.Now().UTC().Format(time.RFC1123)})
			if err != nil {
				return err
			}
			msg := mailer.Message{To: args[0], Subject: "The End Page test email", Body: body}
			if err := e.sender.Send(cmd.Context(), msg); err != nil {
				return fmt.Errorf("send test email: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "test email sent to %s\n", args[0])
			return nil
		},
	}

	userCmd.AddCommand(rolesCmd, reactivateCmd, auditCmd)
	mailCmd.AddCommand(mailTestCmd)
	root.AddCommand(userCmd, mailCmd)
	return root
}

func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return uint(id), nil
}
