package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/treasury/internal/treasury/app"
	"github.com/aussiebroadwan/treasury/internal/treasury/rbac"
	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/internal/treasury/store/drivers/sqlstore"
	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/aussiebroadwan/treasury/pkg/moneyx"
)

// withStore opens the configured database (migrating it) for one command.
func withStore(fn func(ctx context.Context, db *sqlstore.Store) error) error {
	db, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(context.Background(), db)
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(_ context.Context, db *sqlstore.Store) error {
				version, dirty, err := db.MigrationVersion()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d (dirty=%t)\n", db.Dialect(), version, dirty)
				return nil
			})
		},
	}
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current semester, account counts and ledger balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(ctx context.Context, db *sqlstore.Store) error {
				svc := app.NewServices(db, nil, "")

				semester := "none"
				switch cur, err := svc.Semesters.Current(ctx); {
				case err == nil:
					semester = fmt.Sprintf("%s (%s)", cur.ID, cur.Name)
				case !errors.Is(err, service.ErrNotFound):
					return err
				}
				users, err := db.Users().Count(ctx)
				if err != nil {
					return err
				}
				grants, err := db.Roles().CountActiveAssignments(ctx)
				if err != nil {
					return err
				}
				balance, err := svc.Ledger.Balance(ctx, rbac.System())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "database\t%s\n", db.Dialect())
				fmt.Fprintf(w, "semester\t%s\n", semester)
				fmt.Fprintf(w, "users\t%d\n", users)
				fmt.Fprintf(w, "active role grants\t%d\n", grants)
				fmt.Fprintf(w, "ledger balance\t%s\n", moneyx.Format(balance))
				return w.Flush()
			})
		},
	}
}

func createUserCommand() *cobra.Command {
	var (
		p     service.RegisterParams
		roles []string
	)
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an active account and grant it roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cryptox.SetPepperPath(cfg.PepperFile)
			if err := cryptox.LoadPepper(); err != nil {
				return fmt.Errorf("failed to load pepper: %w", err)
			}
			generated := p.Password == ""
			if generated {
				pw, err := cryptox.GeneratePassword()
				if err != nil {
					return err
				}
				p.Password = pw
			}
			return withStore(func(ctx context.Context, db *sqlstore.Store) error {
				svc := app.NewServices(db, nil, "")
				id, err := svc.Users.Provision(ctx, rbac.System(), p, roles)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) with roles %s\n",
					id, p.Email, strings.Join(roles, ","))
				if generated {
					fmt.Fprintf(cmd.OutOrStdout(), "initial password: %s\n", p.Password)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&p.Email, "email", "", "login email")
	cmd.Flags().StringVar(&p.Password, "password", "", "initial password (generated and printed when empty)")
	cmd.Flags().StringVar(&p.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&p.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&p.Phone, "phone", "", "phone number")
	cmd.Flags().StringSliceVar(&roles, "role", []string{rbac.RoleBrother}, "role to grant (repeatable)")
	for _, f := range []string{"email", "first", "last"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func keygenCommand() *cobra.Command {
	var (
		out   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Write a new Ed25519 signing key in PEM form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out = filepath.Clean(out)
			if _, err := os.Stat(out); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", out)
			}
			pemKey, err := cryptox.GenerateEd25519Key()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
				return err
			}
			if err := os.WriteFile(out, pemKey, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "signing.pem", "output path")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing key")
	return cmd
}
