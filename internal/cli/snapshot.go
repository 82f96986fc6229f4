package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pageview/pkg/manifest"
	"github.com/matzehuels/pageview/pkg/store"
)

// newSnapshotCmd creates the snapshot command group.
func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save, list, show, and delete layout snapshots",
	}
	cmd.AddCommand(newSnapshotSaveCmd())
	cmd.AddCommand(newSnapshotListCmd())
	cmd.AddCommand(newSnapshotShowCmd())
	cmd.AddCommand(newSnapshotDeleteCmd())
	return cmd
}

// withStore opens the configured snapshot store for one subcommand run.
func withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := configFromContext(ctx).newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())
	return fn(st)
}

func newSnapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [manifest]",
		Short: "Capture and save a document's layout snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			doc.Layout.Update()

			snapshot := store.Capture(doc.Title, doc.Layout)
			return withStore(ctx, func(st store.Store) error {
				if err := st.Save(ctx, snapshot); err != nil {
					return err
				}
				loggerFromContext(ctx).Info("snapshot saved",
					"id", snapshot.ID, "pages", len(snapshot.Pages))
				fmt.Fprintln(cmd.OutOrStdout(), snapshot.ID)
				return nil
			})
		},
	}
}

func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(st store.Store) error {
				snapshots, err := st.List(ctx)
				if err != nil {
					return err
				}
				if len(snapshots) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render("no snapshots"))
					return nil
				}

				t := table.New().
					Border(lipgloss.RoundedBorder()).
					BorderStyle(StyleDim).
					StyleFunc(func(row, _ int) lipgloss.Style {
						if row == table.HeaderRow {
							return StyleLabel
						}
						return StyleValue
					}).
					Headers("ID", "TITLE", "PAGES", "SIZE", "CREATED")
				for _, s := range snapshots {
					t.Row(s.ID, s.Title,
						strconv.Itoa(len(s.Pages)),
						fmt.Sprintf("%d x %d", s.Width, s.Height),
						s.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.Render())
				return nil
			})
		},
	}
}

func newSnapshotShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(st store.Store) error {
				snapshot, err := st.Load(ctx, args[0])
				if err != nil {
					return err
				}
				data, err := snapshot.Marshal()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}

func newSnapshotDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(st store.Store) error {
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				loggerFromContext(ctx).Info("snapshot deleted", "id", args[0])
				return nil
			})
		},
	}
}
