package cli

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/iudanet/civicvote/internal/models"
)

const feedItemTemplate = `
{{.Title}}  [{{.Category}}]
  {{.Type}} {{.Src}}
{{- if .Description }}
  {{.Description}}
{{- end}}
  {{.Votes}}
`

var feedItem = template.Must(template.New("feed").Parse(feedItemTemplate))

type feedView struct {
	models.ContentItem
	Votes string
}

func (c *Cli) runFeed(ctx context.Context, category string) error {
	items, err := c.content.ListContent(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	if len(items) == 0 {
		c.io.Println("No content found.")
		return nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	// Все счетчики ленты загружаются одним запросом
	if err := c.votes.Hydrate(ctx, ids); err != nil {
		return err
	}

	heading := "=== Feed ==="
	if category != "" {
		heading = fmt.Sprintf("=== Feed: %s ===", category)
	}
	c.io.Println(heading)

	for _, item := range items {
		view := feedView{ContentItem: item, Votes: c.formatItem(item.ID, c.votes.Item(item.ID))}
		if err := feedItem.Execute(c.io, view); err != nil {
			return fmt.Errorf("failed to render %s: %w", item.ID, err)
		}
	}

	c.io.Println()
	c.io.Printf("Total: %d item(s)\n", len(items))
	return nil
}

func (c *Cli) runVotes(ctx context.Context, ids []string) error {
	if err := c.votes.Hydrate(ctx, ids); err != nil {
		return err
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		c.io.Println(c.formatItem(id, c.votes.Item(id)))
	}
	return nil
}
