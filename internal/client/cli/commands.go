package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/iudanet/civicvote/internal/models"
)

// NewRootCommand builds the civicvote command tree.
// build is called once per invocation, after global flags are parsed.
func NewRootCommand(version string, build Builder) *cobra.Command {
	opts := DefaultOptions()
	var (
		c       *Cli
		cleanup func() error
	)

	root := &cobra.Command{
		Use:           "civicvote",
		Short:         "Vote on civic-education content",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			c, cleanup, err = build(cmd.Context(), opts)
			return err
		},
	}

	// finish закрывает ресурсы и при ошибке команды тоже
	finish := func(err error) error {
		if cleanup == nil {
			return err
		}
		return errors.Join(err, cleanup())
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ServerURL, "server", opts.ServerURL, "Server URL")
	flags.StringVar(&opts.DBPath, "db", opts.DBPath, "Path to local database")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Timeout for a single vote write")

	var category string
	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "List content with live vote counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(c.runFeed(cmd.Context(), category))
		},
	}
	feedCmd.Flags().StringVar(&category, "category", "", "Only show items of this category")

	votesCmd := &cobra.Command{
		Use:   "votes <id>...",
		Short: "Show vote counts for content items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(c.runVotes(cmd.Context(), args))
		},
	}

	upCmd := &cobra.Command{
		Use:   "up <id>",
		Short: "Vote up, or retract an up vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(c.runToggle(cmd.Context(), args[0], models.VoteUp))
		},
	}

	downCmd := &cobra.Command{
		Use:   "down <id>",
		Short: "Vote down, or retract a down vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(c.runToggle(cmd.Context(), args[0], models.VoteDown))
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show your saved votes without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return finish(c.runStatus(cmd.Context()))
		},
	}

	root.AddCommand(feedCmd, votesCmd, upCmd, downCmd, statusCmd)
	return root
}
