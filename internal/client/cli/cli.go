package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/civicvote/internal/client/iocli"
	"github.com/iudanet/civicvote/internal/client/storage"
	"github.com/iudanet/civicvote/internal/client/votecache"
	"github.com/iudanet/civicvote/internal/models"
)

// ContentLister returns the content catalog, optionally filtered by category.
type ContentLister interface {
	ListContent(ctx context.Context, category string) ([]models.ContentItem, error)
}

// Options are the global flags shared by all commands.
type Options struct {
	ServerURL string
	DBPath    string
	Timeout   time.Duration
}

// DefaultOptions возвращает значения глобальных флагов по умолчанию
func DefaultOptions() Options {
	return Options{
		ServerURL: "http://localhost:8080",
		DBPath:    "civicvote-client.db",
		Timeout:   votecache.DefaultWriteTimeout,
	}
}

// Builder собирает Cli после разбора флагов. Возвращаемая функция освобождает ресурсы.
type Builder func(ctx context.Context, opts Options) (*Cli, func() error, error)

type Cli struct {
	io      iocli.IO
	content ContentLister
	votes   *votecache.Store
	saved   storage.VoteStorage
}

func New(io iocli.IO, content ContentLister, votes *votecache.Store, saved storage.VoteStorage) *Cli {
	return &Cli{
		io:      io,
		content: content,
		votes:   votes,
		saved:   saved,
	}
}

// formatVote выводит направление стрелкой в терминале и словом в pipe
func (c *Cli) formatVote(v models.Vote) string {
	if !v.IsDirection() {
		return "-"
	}
	if !c.io.IsTerminal() {
		return string(v)
	}
	if v == models.VoteUp {
		return "▲"
	}
	return "▼"
}

func (c *Cli) formatItem(id string, item votecache.ItemState) string {
	up, down := "up", "down"
	if c.io.IsTerminal() {
		up, down = "▲", "▼"
	}
	line := fmt.Sprintf("%-16s %s %d  %s %d  you: %s", id, up, item.Counts.Up, down, item.Counts.Down, c.formatVote(item.UserVote))
	if item.Pending {
		line += "  (pending)"
	}
	return line
}
