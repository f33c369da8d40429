package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/pkg/api"
)

// ContentCatalog источник элементов ленты
type ContentCatalog interface {
	ByCategory(category string) []models.ContentItem
}

// ContentHandler handles GET /api/content
type ContentHandler struct {
	logger  *slog.Logger
	catalog ContentCatalog
}

// NewContentHandler creates a new content handler
func NewContentHandler(logger *slog.Logger, catalog ContentCatalog) *ContentHandler {
	return &ContentHandler{
		logger:  logger,
		catalog: catalog,
	}
}

// List обрабатывает GET /api/content[?category=]
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.ByCategory(r.URL.Query().Get("category"))

	resp := api.ContentResponse{Items: make([]api.ContentItem, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, api.ContentItem{
			ID:          item.ID,
			Title:       item.Title,
			Type:        string(item.Type),
			Src:         item.Src,
			Category:    item.Category,
			Description: item.Description,
		})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
