// Command tools runs administrative operations against the database without
// going through the HTTP API.
//
//	go run ./tools migrate
//	go run ./tools decide 12 approved --admin 1 --notes "passport checked"
//	go run ./tools delete-user 42 --admin 1
//	go run ./tools remove-trip 7 --admin 1 --reason "duplicate itinerary"
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"travel-booking/config"
	"travel-booking/database"
	approvalModel "travel-booking/models/approval"
	"travel-booking/services/approval"
	"travel-booking/services/audit"
	"travel-booking/services/notification"
	"travel-booking/services/removal"
	"travel-booking/services/transaction"

	"github.com/spf13/cobra"
)

var (
	adminID uint
	notes   string
	reason  string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "tools",
	Short:         "Travel booking administration tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *database.Store, _ *transaction.Executor) error {
			fmt.Println("🚀 Running database migrations...")
			if err := database.Migrate(store.DB.WithContext(ctx)); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("✅ Migration completed successfully!")
			return nil
		})
	},
}

var decideCmd = &cobra.Command{
	Use:   "decide [approval-id] [approved|rejected]",
	Short: "Approve or reject a pending booking approval",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		approvalID, err := parseID(args[0])
		if err != nil {
			return err
		}
		decision, err := approvalModel.ParseStatus(args[1])
		if err != nil {
			return err
		}
		var notesPtr *string
		if notes != "" {
			notesPtr = &notes
		}
		return withStore(func(ctx context.Context, _ *database.Store, exec *transaction.Executor) error {
			svc := approval.NewService(exec, audit.Writer{}, notification.Writer{})
			a, err := svc.Decide(ctx, approvalID, decision, adminID, notesPtr)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Approval %d is now %s\n", a.ID, a.Status)
			return nil
		})
	},
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete-user [user-id]",
	Short: "Delete a user and every row the user owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, _ *database.Store, exec *transaction.Executor) error {
			svc := removal.NewService(exec, audit.Writer{}, notification.Writer{})
			if err := svc.DeleteUser(ctx, adminID, userID); err != nil {
				return err
			}
			fmt.Printf("✅ User %d deleted\n", userID)
			return nil
		})
	},
}

var removeTripCmd = &cobra.Command{
	Use:   "remove-trip [trip-id]",
	Short: "Remove a trip and notify its owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tripID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, _ *database.Store, exec *transaction.Executor) error {
			svc := removal.NewService(exec, audit.Writer{}, notification.Writer{})
			if err := svc.RemoveTrip(ctx, tripID, adminID, reason); err != nil {
				return err
			}
			fmt.Printf("✅ Trip %d removed\n", tripID)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Deadline for the whole command")

	for _, cmd := range []*cobra.Command{decideCmd, deleteUserCmd, removeTripCmd} {
		cmd.Flags().UintVar(&adminID, "admin", 0, "Id of the administrator performing the action (required)")
		cmd.MarkFlagRequired("admin")
	}
	decideCmd.Flags().StringVar(&notes, "notes", "", "Notes sent to the booking owner")
	removeTripCmd.Flags().StringVar(&reason, "reason", "", "Reason shown to the trip owner (required)")
	removeTripCmd.MarkFlagRequired("reason")

	rootCmd.AddCommand(migrateCmd, decideCmd, deleteUserCmd, removeTripCmd)
}

func withStore(fn func(ctx context.Context, store *database.Store, exec *transaction.Executor) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx, store, transaction.NewExecutor(store, cfg.TxMaxRetries))
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
