package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/civicvote/internal/client/votecache"
	"github.com/iudanet/civicvote/internal/models"
)

func (c *Cli) runToggle(ctx context.Context, id string, direction models.Vote) error {
	// Текущий голос нужен, чтобы повторное нажатие снимало его
	if err := c.votes.Hydrate(ctx, []string{id}); err != nil {
		return err
	}

	var settled *votecache.Event
	unsubscribe := c.votes.Subscribe(func(ev votecache.Event) {
		if ev.ID != id {
			return
		}
		switch ev.Kind {
		case votecache.EventOptimistic:
			c.io.Println(c.formatItem(id, ev.Item))
		case votecache.EventConfirmed, votecache.EventRolledBack:
			e := ev
			settled = &e
		}
	})
	defer unsubscribe()

	if !c.votes.ToggleVote(ctx, id, direction) {
		return fmt.Errorf("vote on %s was not sent: previous vote still in flight", id)
	}
	c.votes.Wait()

	if settled == nil {
		return fmt.Errorf("vote on %s did not settle", id)
	}
	if settled.Kind == votecache.EventRolledBack {
		c.io.Println(c.formatItem(id, settled.Item))
		return fmt.Errorf("vote on %s rolled back: %w", id, settled.Err)
	}

	c.io.Println(c.formatItem(id, settled.Item))
	c.io.Println("✓ Vote saved")
	return nil
}
