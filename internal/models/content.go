package models

// ContentType тип медиа элемента ленты
type ContentType string

// ContentType константы
const (
	ContentTypeVideo ContentType = "video"
	ContentTypeImage ContentType = "image"
)

// ContentItem представляет элемент каталога контента.
// Каталог статичен; голосование ссылается на элементы только по ID.
type ContentItem struct {
	ID          string      `json:"id" toml:"id"`
	Title       string      `json:"title" toml:"title"`
	Type        ContentType `json:"type" toml:"type"`
	Src         string      `json:"src" toml:"src"`
	Category    string      `json:"category" toml:"category"`
	Description string      `json:"description,omitempty" toml:"description"`
}
