package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/internal/server/ledger"
	"github.com/iudanet/civicvote/internal/server/middleware"
	"github.com/iudanet/civicvote/internal/validation"
	"github.com/iudanet/civicvote/pkg/api"
)

// maxVoteBodyBytes ограничение размера тела POST /api/votes
const maxVoteBodyBytes = 4 << 10

//go:generate moq -out voteledger_mock.go . VoteLedger

// VoteLedger определяет операции ledger, нужные HTTP слою
type VoteLedger interface {
	ReadCounts(ctx context.Context, ids []string, visitorID string) (*models.BatchState, error)
	SetVote(ctx context.Context, contentID, visitorID string, vote models.Vote) (*models.VoteState, error)
}

// VotesHandler handles /api/votes
type VotesHandler struct {
	logger *slog.Logger
	ledger VoteLedger
}

// NewVotesHandler creates a new votes handler
func NewVotesHandler(logger *slog.Logger, l VoteLedger) *VotesHandler {
	return &VotesHandler{
		logger: logger,
		ledger: l,
	}
}

// setVoteBody тело POST запроса; vote декодируется отдельно,
// чтобы отличить отсутствующее поле от явного null
type setVoteBody struct {
	ContentID *string         `json:"contentId"`
	Vote      json.RawMessage `json:"vote"`
}

// ReadVotes обрабатывает GET /api/votes?ids=a,b,c
func (h *VotesHandler) ReadVotes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	ids := validation.SplitIDs(r.URL.Query().Get("ids"))
	visitorID, _ := middleware.VisitorID(r.Context())

	state, err := h.ledger.ReadCounts(r.Context(), ids, visitorID)
	if err != nil {
		h.handleLedgerError(w, err)
		return
	}

	sendJSON(h.logger, w, toVotesResponse(state), http.StatusOK)
}

// SetVote обрабатывает POST /api/votes
func (h *VotesHandler) SetVote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	visitorID, ok := middleware.VisitorID(r.Context())
	if !ok {
		h.logger.Error("Visitor ID not found in context")
		sendError(h.logger, w, "visitor identity is required", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxVoteBodyBytes)

	var body setVoteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			sendError(h.logger, w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.Warn("Invalid vote request body", "error", err)
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if body.ContentID == nil || *body.ContentID == "" {
		sendError(h.logger, w, "contentId is required", http.StatusBadRequest)
		return
	}
	if len(bytes.TrimSpace(body.Vote)) == 0 {
		sendError(h.logger, w, `vote is required ("up", "down" or null)`, http.StatusBadRequest)
		return
	}

	var vote models.Vote
	if err := json.Unmarshal(body.Vote, &vote); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.ledger.SetVote(r.Context(), *body.ContentID, visitorID, vote)
	if err != nil {
		h.handleLedgerError(w, err)
		return
	}

	sendJSON(h.logger, w, api.SetVoteResponse{
		UserVote: votePtr(state.UserVote),
		Up:       state.Counts.Up,
		Down:     state.Counts.Down,
	}, http.StatusOK)
}

// MethodNotAllowed отвечает 405 на остальные методы /api/votes
func (h *VotesHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST")
	sendError(h.logger, w, "method not allowed", http.StatusMethodNotAllowed)
}

func (h *VotesHandler) handleLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrRetrieval):
		sendError(h.logger, w, ledger.ErrRetrieval.Error(), http.StatusInternalServerError)
	case errors.Is(err, ledger.ErrWrite):
		sendError(h.logger, w, ledger.ErrWrite.Error(), http.StatusInternalServerError)
	default:
		h.logger.Error("Unexpected ledger error", "error", err)
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
	}
}

func toVotesResponse(state *models.BatchState) api.VotesResponse {
	resp := api.VotesResponse{
		Counts:    make(map[string]api.VoteCounts, len(state.Counts)),
		UserVotes: make(map[string]string, len(state.UserVotes)),
	}
	for id, c := range state.Counts {
		resp.Counts[id] = api.VoteCounts{Up: c.Up, Down: c.Down}
	}
	for id, v := range state.UserVotes {
		if v.IsDirection() {
			resp.UserVotes[id] = string(v)
		}
	}
	return resp
}

func votePtr(v models.Vote) *string {
	if !v.IsDirection() {
		return nil
	}
	s := string(v)
	return &s
}
