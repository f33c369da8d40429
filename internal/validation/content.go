package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// ContentIDPattern определяет допустимый формат идентификатора контента
// Латинские буквы, цифры и символы . _ : - ; первый символ буква или цифра.
// Запятая запрещена: она разделяет ids в batch запросе.
var ContentIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._:-]*$`)

const (
	// MaxContentIDLen максимальная длина идентификатора контента
	MaxContentIDLen = 128
	// DefaultMaxBatchIDs лимит ids в одном batch чтении
	DefaultMaxBatchIDs = 200
	// MaxVisitorIDLen максимальная длина идентификатора посетителя
	MaxVisitorIDLen = 256
)

// ValidateContentID проверяет идентификатор единицы контента
func ValidateContentID(contentID string) error {
	if contentID == "" {
		return fmt.Errorf("contentId cannot be empty")
	}

	if len(contentID) > MaxContentIDLen {
		return fmt.Errorf("contentId must not exceed %d characters", MaxContentIDLen)
	}

	if !ContentIDPattern.MatchString(contentID) {
		return fmt.Errorf("contentId %q contains invalid characters", contentID)
	}

	return nil
}

// ValidateVisitorID проверяет, что идентификатор посетителя присутствует
func ValidateVisitorID(visitorID string) error {
	if strings.TrimSpace(visitorID) == "" {
		return fmt.Errorf("visitor identity is required")
	}
	if len(visitorID) > MaxVisitorIDLen {
		return fmt.Errorf("visitor identity must not exceed %d characters", MaxVisitorIDLen)
	}
	return nil
}

// SplitIDs разбирает список ids через запятую из query параметра
func SplitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// NormalizeIDs обрезает пробелы, отбрасывает пустые значения и дубликаты,
// сохраняя порядок первого вхождения. Каждый id проверяется ValidateContentID.
// maxIDs <= 0 отключает лимит. Превышение лимита отклоняет весь запрос,
// а не обрезает список: клиент иначе получил бы неполный batch без признака ошибки.
func NormalizeIDs(ids []string, maxIDs int) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))

	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		if err := ValidateContentID(id); err != nil {
			return nil, err
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	if maxIDs > 0 && len(result) > maxIDs {
		return nil, fmt.Errorf("too many ids: %d (max %d)", len(result), maxIDs)
	}

	return result, nil
}
