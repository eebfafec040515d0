package session

import "github.com/dmitrijs2005/beautystore/internal/client/models"

type EventKind int

const (
	EventLoggedIn EventKind = iota + 1
	EventLoggedOut
	// EventExpired is published when the backend rejected the stored token.
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventLoggedIn:
		return "logged_in"
	case EventLoggedOut:
		return "logged_out"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event tells the navigation host which screen graph to show. Session is set
// for EventLoggedIn only.
type Event struct {
	Kind    EventKind
	Session *models.Session
}

// Authenticated reports whether the host should show the signed-in graph
// after this event.
func (e Event) Authenticated() bool {
	return e.Kind == EventLoggedIn
}
