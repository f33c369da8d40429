package votecache

import "github.com/iudanet/civicvote/internal/models"

// EventKind тип уведомления об изменении кэша
type EventKind int

// EventKind константы
const (
	EventOptimistic    EventKind = iota + 1 // голос применен локально, запись отправлена
	EventConfirmed                          // сервер подтвердил запись
	EventRolledBack                         // запись не удалась, состояние восстановлено
	EventHydrated                           // счетчики загружены с сервера
	EventHydrateFailed                      // загрузка счетчиков не удалась
)

func (k EventKind) String() string {
	switch k {
	case EventOptimistic:
		return "optimistic"
	case EventConfirmed:
		return "confirmed"
	case EventRolledBack:
		return "rolled_back"
	case EventHydrated:
		return "hydrated"
	case EventHydrateFailed:
		return "hydrate_failed"
	default:
		return "unknown"
	}
}

// Event describes a state change of the Store.
// ID and Item are set for toggle events, IDs for hydrate events.
type Event struct {
	Err  error
	ID   string
	IDs  []string
	Item ItemState
	Kind EventKind
}

// ItemState is the cached view of one content item.
type ItemState struct {
	UserVote models.Vote
	Counts   models.Counts
	Pending  bool
}

// State is a copy of the whole cache.
type State struct {
	Counts    map[string]models.Counts
	UserVotes map[string]models.Vote
	Pending   map[string]bool
}
