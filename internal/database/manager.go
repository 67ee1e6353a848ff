package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Store names used across the service. The auth and characters stores
// belong to the emulator; the launcher store is owned by this service.
const (
	StoreAuth       = "auth"
	StoreCharacters = "characters"
	StoreLauncher   = "launcher"
)

// ErrStoreUnavailable is returned for any operation against a store
// that is not registered, failed to connect, or has been closed.
// Callers treat it as retryable and must never confuse it with an
// empty result.
var ErrStoreUnavailable = errors.New("store unavailable")

// State tracks the lifecycle of a named store handle:
// Unconnected -> Connecting -> Connected -> Closed. A Connected handle
// may go back through Connecting only via an explicit reconnect.
type State int

const (
	Unconnected State = iota
	Connecting
	Connected
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Closed:
		return "closed"
	}
	return "unconnected"
}

type handle struct {
	db    *sql.DB
	state State
}

// Manager owns the named store handles and hands them out to the
// repositories. The mutex guards only the in-memory handle table; it is
// never held across a database round-trip. Reads (Handle, State) take
// the read lock so concurrent queries against open handles do not
// serialize on each other.
type Manager struct {
	mu      sync.RWMutex
	handles map[string]*handle
}

// NewManager returns an empty manager; stores are added via Connect or
// Register.
func NewManager() *Manager {
	return &Manager{handles: make(map[string]*handle)}
}

// Connect opens a MySQL connection for the named store and registers
// it. Reconnecting under an existing name replaces the prior handle,
// closing it only once the new one is in place. When the dial fails a
// previously Connected handle is kept, so a botched reconnect never
// takes down a working store; otherwise the store is left Unconnected
// and ErrStoreUnavailable is wrapped into the error.
func (m *Manager) Connect(name string, p Params) error {
	placeholder := &handle{state: Connecting}
	m.mu.Lock()
	prev := m.handles[name]
	m.handles[name] = placeholder
	m.mu.Unlock()

	// The dial happens outside the lock.
	db, err := Open(p)
	if err != nil {
		m.mu.Lock()
		if m.handles[name] == placeholder {
			if prev != nil && prev.state == Connected && prev.db != nil {
				m.handles[name] = prev
			} else {
				m.handles[name] = &handle{state: Unconnected}
			}
		}
		m.mu.Unlock()
		return fmt.Errorf("%w: connect %s: %v", ErrStoreUnavailable, name, err)
	}

	m.mu.Lock()
	installed := m.handles[name] == placeholder
	if installed {
		m.handles[name] = &handle{db: db, state: Connected}
	}
	m.mu.Unlock()

	if !installed {
		// The store was re-registered while we were dialing; the newer
		// handle wins.
		db.Close()
		return nil
	}
	if prev != nil && prev.db != nil {
		prev.db.Close()
	}
	log.Printf("connected to %s store (%s@%s:%s/%s)", name, p.User, p.Host, p.Port, p.Name)
	return nil
}

// Register installs an already-open handle under the given name,
// closing any handle it replaces. Tests use this to inject mock
// databases.
func (m *Manager) Register(name string, db *sql.DB) {
	m.mu.Lock()
	prev := m.handles[name]
	m.handles[name] = &handle{db: db, state: Connected}
	m.mu.Unlock()

	if prev != nil && prev.db != nil {
		prev.db.Close()
	}
}

// Handle returns the open database for the named store, or
// ErrStoreUnavailable when the store was never connected, failed to
// connect, or has been closed.
func (m *Manager) Handle(name string) (*sql.DB, error) {
	m.mu.RLock()
	h, ok := m.handles[name]
	m.mu.RUnlock()

	if !ok || h.state != Connected || h.db == nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, name)
	}
	return h.db, nil
}

// State reports the lifecycle state of the named store. Unknown names
// are Unconnected.
func (m *Manager) State(name string) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.handles[name]; ok {
		return h.state
	}
	return Unconnected
}

// DisconnectAll closes every registered handle and marks it Closed.
// Calling it more than once is safe; operations issued after it fail
// with ErrStoreUnavailable.
func (m *Manager) DisconnectAll() {
	m.mu.Lock()
	var toClose []*sql.DB
	for name, h := range m.handles {
		if h.state == Connected && h.db != nil {
			toClose = append(toClose, h.db)
		}
		m.handles[name] = &handle{state: Closed}
	}
	m.mu.Unlock()

	for _, db := range toClose {
		db.Close()
	}
	if len(toClose) > 0 {
		log.Printf("closed %d store connection(s)", len(toClose))
	}
}
