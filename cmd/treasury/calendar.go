package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/treasury/internal/treasury/app"
	"github.com/aussiebroadwan/treasury/internal/treasury/store/drivers/sqlstore"
)

// calendarCommand exposes the sync bookkeeping an external calendar worker
// drives: list pending links, then report each one as synced or failed.
func calendarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Inspect and update event calendar sync state",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "List calendar links waiting to be synced",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(ctx context.Context, db *sqlstore.Store) error {
				links, err := app.NewServices(db, nil, "").Events.PendingLinks(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "EVENT\tCALENDAR\tEXTERNAL\tLAST ERROR")
				for _, l := range links {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.EventID, l.CalendarID, l.ExternalEventID, l.LastError)
				}
				return w.Flush()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mark-synced EVENT_ID",
		Short: "Record a successful sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, db *sqlstore.Store) error {
				if err := app.NewServices(db, nil, "").Events.MarkSynced(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s synced at %s\n", args[0], time.Now().UTC().Format(time.RFC3339))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mark-failed EVENT_ID MESSAGE",
		Short: "Record a failed sync",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, db *sqlstore.Store) error {
				svc := app.NewServices(db, nil, "")
				if err := svc.Events.MarkSyncFailed(ctx, args[0], errors.New(args[1])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s marked failed\n", args[0])
				return nil
			})
		},
	})

	return cmd
}
