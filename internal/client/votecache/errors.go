package votecache

import "errors"

var (
	// ErrRetrieval возвращается, когда не удалось загрузить голоса с сервера
	ErrRetrieval = errors.New("failed to retrieve votes")
	// ErrWrite передается в EventRolledBack, когда сервер не принял голос
	ErrWrite = errors.New("failed to save vote")
)
