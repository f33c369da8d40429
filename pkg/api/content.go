package api

// ContentItem элемент каталога контента
type ContentItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Src         string `json:"src"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// ContentResponse представляет ответ GET /api/content
type ContentResponse struct {
	Items []ContentItem `json:"items"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
