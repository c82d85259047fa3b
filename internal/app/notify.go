package app

import "sync"

type Level int

const (
	LevelInfo Level = iota
	LevelLoading
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelLoading:
		return "loading"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a short non-blocking message for the user. Notifications
// sharing an ID replace each other, so a loading message can be followed by
// its outcome.
type Notification struct {
	Level   Level
	ID      string
	Message string
}

// Notifier must be safe for concurrent use.
type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Errors returns the messages of error notifications in arrival order.
func (r *Recorder) Errors() []string {
	var messages []string
	for _, n := range r.All() {
		if n.Level == LevelError {
			messages = append(messages, n.Message)
		}
	}
	return messages
}
