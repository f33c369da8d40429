package api

// VoteCounts агрегат голосов по единице контента
type VoteCounts struct {
	Up   int `json:"up"`   // количество голосов "up"
	Down int `json:"down"` // количество голосов "down"
}

// VotesResponse представляет ответ GET /api/votes
type VotesResponse struct {
	Counts    map[string]VoteCounts `json:"counts"`    // счетчики для каждого запрошенного id
	UserVotes map[string]string     `json:"userVotes"` // "up"/"down" только для ids, где посетитель голосовал
}

// SetVoteRequest представляет запрос POST /api/votes
type SetVoteRequest struct {
	ContentID string  `json:"contentId"` // идентификатор единицы контента
	Vote      *string `json:"vote"`      // "up", "down" или null для снятия голоса
}

// SetVoteResponse представляет ответ POST /api/votes
type SetVoteResponse struct {
	UserVote *string `json:"userVote"` // итоговый голос посетителя или null
	Up       int     `json:"up"`       // пересчитанное количество "up"
	Down     int     `json:"down"`     // пересчитанное количество "down"
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"` // описание ошибки
}
