package discord

import (
	"sync"

	"github.com/kapu/combot-go/internal/menu"
)

// tracked pairs a navigation session with the handles needed to edit its
// ephemeral surface later (timeout notice, teardown).
type tracked struct {
	session          *menu.Session
	interactionToken string
	messageID        string
}

// sessionRegistry maps surface message IDs to their live sessions. One user
// can hold several surfaces at once since combo lists open separately.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*tracked
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*tracked)}
}

func (r *sessionRegistry) put(messageID, interactionToken string, session *menu.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[messageID] = &tracked{
		session:          session,
		interactionToken: interactionToken,
		messageID:        messageID,
	}
}

func (r *sessionRegistry) get(messageID string) (*tracked, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.sessions[messageID]
	return t, ok
}

func (r *sessionRegistry) remove(messageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, messageID)
}

// shutdownAll closes every live session, for process teardown.
func (r *sessionRegistry) shutdownAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.sessions {
		t.session.Shutdown()
		delete(r.sessions, id)
	}
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
