/*
Package directory implements the identity collaborator the expense engine
consults for referential integrity.

PURPOSE:
  A thin in-memory registry of users and groups. Deliberately outside the
  ledger core: the engine only depends on the ledger.Directory interface
  (UserExists / GroupExists), never on this package.

IDENTIFIERS:
  Sequential numeric IDs, assigned on creation. The ordering of IDs is the
  total order the ledger's canonical pair keys rely on.

SEE ALSO:
  - ledger/engine.go: The Directory interface this package satisfies
*/
package directory

import (
	"sync"
	"time"

	"github.com/warp/split-engine/ledger"
)

// =============================================================================
// RECORDS
// =============================================================================

type User struct {
	ID        ledger.UserID
	Name      string
	Email     string
	CreatedAt time.Time
}

type Group struct {
	ID        ledger.GroupID
	Name      string
	Members   []ledger.UserID
	CreatedAt time.Time
}

// =============================================================================
// SERVICE
// =============================================================================

// Service is an in-memory user and group registry. Safe for concurrent use.
type Service struct {
	mu          sync.RWMutex
	users       map[ledger.UserID]User
	groups      map[ledger.GroupID]Group
	nextUserID  ledger.UserID
	nextGroupID ledger.GroupID
}

// Compile-time check that Service implements ledger.Directory
var _ ledger.Directory = (*Service)(nil)

func NewService() *Service {
	return &Service{
		users:       make(map[ledger.UserID]User),
		groups:      make(map[ledger.GroupID]Group),
		nextUserID:  1,
		nextGroupID: 1,
	}
}

// CreateUser registers a user and assigns the next sequential ID.
func (s *Service) CreateUser(name, email string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{
		ID:        s.nextUserID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.nextUserID++
	return u
}

// CreateGroup registers a group of known users.
// Fails with ErrUnknownParticipant if any member is not registered.
func (s *Service) CreateGroup(name string, members []ledger.UserID) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range members {
		if _, ok := s.users[id]; !ok {
			return Group{}, &ledger.UnknownParticipantError{UserID: id}
		}
	}

	g := Group{
		ID:        s.nextGroupID,
		Name:      name,
		Members:   append([]ledger.UserID(nil), members...),
		CreatedAt: time.Now().UTC(),
	}
	s.groups[g.ID] = g
	s.nextGroupID++
	return g, nil
}

// User looks up a user by ID.
func (s *Service) User(id ledger.UserID) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// Group looks up a group by ID.
func (s *Service) Group(id ledger.GroupID) (Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if ok {
		g.Members = append([]ledger.UserID(nil), g.Members...)
	}
	return g, ok
}

// Users returns all registered users ordered by ID.
func (s *Service) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]User, 0, len(s.users))
	for id := ledger.UserID(1); id < s.nextUserID; id++ {
		if u, ok := s.users[id]; ok {
			result = append(result, u)
		}
	}
	return result
}

// Groups returns all registered groups ordered by ID.
func (s *Service) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Group, 0, len(s.groups))
	for id := ledger.GroupID(1); id < s.nextGroupID; id++ {
		if g, ok := s.groups[id]; ok {
			g.Members = append([]ledger.UserID(nil), g.Members...)
			result = append(result, g)
		}
	}
	return result
}

// UserExists implements ledger.Directory.
func (s *Service) UserExists(id ledger.UserID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

// GroupExists implements ledger.Directory.
func (s *Service) GroupExists(id ledger.GroupID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[id]
	return ok
}
