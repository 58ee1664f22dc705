package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/templui/importstage/internal/app"
	"github.com/templui/importstage/internal/config"
	"github.com/templui/importstage/internal/db"
	"github.com/templui/importstage/internal/service"
)

// withApp opens the store for the duration of fn.
func withApp(ctx context.Context, cfg *config.Config, fn func(a *app.App) error) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := a.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	return fn(a)
}

func initCmd(c *cli) *cobra.Command {
	var recreate bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the store or bring its schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.WithOverrides(config.Overrides{Recreate: &recreate})
			return withApp(cmd.Context(), cfg, func(*app.App) error {
				fmt.Printf("store ready: %s (%s keys)\n", db.Path(cfg.Dir), cfg.KeyType())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&recreate, "recreate", c.cfg.Recreate, "Delete an existing store before opening or set STAGING_RECREATE env")
	return cmd
}

func statsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts per table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), c.existing(), func(a *app.App) error {
				counts := []struct {
					name  string
					count func() (int, error)
				}{
					{"categories", a.Categories.Count},
					{"users", a.Users.Count},
					{"topics", a.Topics.Count},
					{"pm-topics", a.PmTopics.Count},
					{"posts", a.Posts.Count},
					{"pm-posts", a.PmPosts.Count},
					{"likes", a.Likes.Count},
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, c := range counts {
					n, err := c.count()
					if err != nil {
						return fmt.Errorf("failed to count %s: %w", c.name, err)
					}
					fmt.Fprintf(w, "%s\t%d\n", c.name, n)
				}
				return w.Flush()
			})
		},
	}
}

func repairCmd(c *cli) *cobra.Command {
	var skipOrphans, skipPrune bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Reconcile orphaned posts, rebuild post order, recompute user dates and prune unused users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), c.existing(), func(a *app.App) error {
				report, err := a.RepairService.Run(cmd.Context(), service.RepairOptions{
					CreateMissingTopics: !skipOrphans,
					DeleteUnusedUsers:   !skipPrune,
				})
				if err != nil {
					return err
				}

				fmt.Printf("topics created: %d\nposts ordered: %d\nusers deleted: %d\n",
					report.TopicsCreated, report.PostsOrdered, report.UsersDeleted)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&skipOrphans, "skip-orphans", false, "Do not create topics from orphaned first posts")
	cmd.Flags().BoolVar(&skipPrune, "skip-prune", false, "Keep users without topics or posts")
	return cmd
}

func queryCmd(c *cli) *cobra.Command {
	var first bool

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run SQL against the store and print rows as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), c.existing(), func(a *app.App) error {
				enc := json.NewEncoder(os.Stdout)
				if first {
					value, err := a.Queries.FirstValue(args[0])
					if err != nil {
						return err
					}
					return enc.Encode(value)
				}

				rows, err := a.Queries.Rows(args[0])
				if err != nil {
					return err
				}
				for _, row := range rows {
					if err := enc.Encode(row); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&first, "first", false, "Print only the first column of the first row")
	return cmd
}

func drainCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "drain <kind>",
		Short:     "Write every row of a table as JSON lines (" + strings.Join(service.Kinds, ", ") + ")",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: service.Kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), c.existing(), func(a *app.App) error {
				_, err := a.ExportService.Drain(args[0], os.Stdout)
				return err
			})
		},
	}
}

func snapshotCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Upload a copy of the store to S3-compatible storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), c.existing(), func(a *app.App) error {
				snapshots, err := a.SnapshotService(cmd.Context())
				if err != nil {
					return err
				}

				snapshot, err := snapshots.Upload(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Printf("uploaded %s\n%s\n", snapshot.Key, snapshot.URL)
				return nil
			})
		},
	}
}
