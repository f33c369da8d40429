package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/iudanet/civicvote/internal/client/storage"
	"github.com/iudanet/civicvote/internal/client/votecache"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Saved Votes ===")
	c.io.Println()

	snapshot, err := c.saved.LoadVotes(ctx, votecache.StoreName)
	if errors.Is(err, storage.ErrVotesNotFound) || (err == nil && len(snapshot.UserVotes) == 0) {
		c.io.Println("No votes saved yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load saved votes: %w", err)
	}

	ids := make([]string, 0, len(snapshot.UserVotes))
	for id := range snapshot.UserVotes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		c.io.Printf("%-16s %s\n", id, c.formatVote(snapshot.UserVotes[id]))
	}

	c.io.Println()
	c.io.Printf("Total: %d vote(s), saved %s\n", len(ids), time.Unix(snapshot.SavedAt, 0).Format(time.RFC3339))
	return nil
}
