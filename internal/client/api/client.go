package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/civicvote/internal/client/storage"
	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/pkg/api"
)

// DefaultCookieName имя cookie идентичности, если сервер еще не выдал свою
const DefaultCookieName = "d101_uid"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Client представляет HTTP клиент для взаимодействия с сервером голосования
type Client struct {
	httpClient *http.Client
	identities storage.IdentityStorage
	logger     *slog.Logger
	identity   *storage.Identity
	baseURL    string
	mu         sync.Mutex
	loaded     bool
}

// NewClient создает новый API клиент.
// identities может быть nil: тогда идентичность живет только в памяти процесса.
func NewClient(baseURL string, identities storage.IdentityStorage, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		identities: identities,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// BaseURL returns the server URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ReadVotes получает счетчики и собственные голоса для набора ids одним запросом
func (c *Client) ReadVotes(ctx context.Context, ids []string) (*models.BatchState, error) {
	path := "/api/votes?ids=" + url.QueryEscape(strings.Join(ids, ","))

	var resp api.VotesResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("read votes request failed: %w", err)
	}

	state := &models.BatchState{
		Counts:    make(map[string]models.Counts, len(resp.Counts)),
		UserVotes: make(map[string]models.Vote, len(resp.UserVotes)),
	}
	for id, counts := range resp.Counts {
		state.Counts[id] = models.Counts{Up: counts.Up, Down: counts.Down}
	}
	for id, raw := range resp.UserVotes {
		vote, err := models.ParseVote(raw)
		if err != nil {
			return nil, fmt.Errorf("read votes: bad vote for %s: %w", id, err)
		}
		state.UserVotes[id] = vote
	}

	return state, nil
}

// SetVote отправляет голос; models.VoteNone снимает голос
func (c *Client) SetVote(ctx context.Context, contentID string, vote models.Vote) (*models.VoteState, error) {
	req := api.SetVoteRequest{ContentID: contentID}
	if vote.IsDirection() {
		v := string(vote)
		req.Vote = &v
	}

	var resp api.SetVoteResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/votes", req, &resp); err != nil {
		return nil, fmt.Errorf("set vote request failed: %w", err)
	}

	state := &models.VoteState{Counts: models.Counts{Up: resp.Up, Down: resp.Down}}
	if resp.UserVote != nil {
		parsed, err := models.ParseVote(*resp.UserVote)
		if err != nil {
			return nil, fmt.Errorf("set vote: %w", err)
		}
		state.UserVote = parsed
	}

	return state, nil
}

// ListContent получает каталог контента, опционально по категории
func (c *Client) ListContent(ctx context.Context, category string) ([]models.ContentItem, error) {
	path := "/api/content"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var resp api.ContentResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list content request failed: %w", err)
	}

	items := make([]models.ContentItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, models.ContentItem{
			ID:          item.ID,
			Title:       item.Title,
			Type:        models.ContentType(item.Type),
			Src:         item.Src,
			Category:    item.Category,
			Description: item.Description,
		})
	}
	return items, nil
}

// currentIdentity возвращает сохраненную идентичность (загружается один раз)
func (c *Client) currentIdentity(ctx context.Context) *storage.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded && c.identities != nil {
		identity, err := c.identities.GetIdentity(ctx, c.baseURL)
		switch {
		case err == nil:
			c.identity = identity
		case !errors.Is(err, storage.ErrIdentityNotFound):
			c.logger.Warn("Failed to load visitor identity", "error", err)
		}
	}
	c.loaded = true

	return c.identity
}

// rememberIdentity сохраняет cookie идентичности, выданную сервером
func (c *Client) rememberIdentity(ctx context.Context, resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := DefaultCookieName
	if c.identity != nil && c.identity.CookieName != "" {
		name = c.identity.CookieName
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name != name || cookie.Value == "" {
			continue
		}

		identity := &storage.Identity{CookieName: cookie.Name, Token: cookie.Value}
		if !cookie.Expires.IsZero() {
			identity.ExpiresAt = cookie.Expires.Unix()
		}
		c.identity = identity

		if c.identities != nil {
			if err := c.identities.SaveIdentity(ctx, c.baseURL, identity); err != nil {
				c.logger.Warn("Failed to save visitor identity", "error", err)
			}
		}
		return
	}
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if identity := c.currentIdentity(ctx); identity != nil {
		req.AddCookie(&http.Cookie{Name: identity.CookieName, Value: identity.Token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.rememberIdentity(ctx, resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			statusErr.Message = errResp.Error
		}
		return statusErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
