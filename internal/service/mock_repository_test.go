package service

import (
	"errors"

	"notekeep-server/internal/domain"
	"notekeep-server/internal/repository"
)

// mockUserRepository is an in-memory UserRepository. Reads return copies so
// a test only observes mutations that went through Update/Mutate, the same
// way the CouchDB-backed repository behaves.
type mockUserRepository struct {
	users map[string]*domain.User
	// conflictsLeft makes the next N Update calls fail with ErrConflict to
	// exercise the Mutate retry path in callers.
	conflictsLeft int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func cloneUser(user *domain.User) *domain.User {
	clone := *user
	clone.Notes = make([]domain.Note, len(user.Notes))
	copy(clone.Notes, user.Notes)
	return &clone
}

func (m *mockUserRepository) Create(user *domain.User) error {
	if _, ok := m.users[user.ID]; ok {
		return repository.ErrConflict
	}
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *mockUserRepository) FindByID(id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (m *mockUserRepository) FindByUsername(username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) UsernameExists(username string) (bool, error) {
	_, err := m.FindByUsername(username)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *mockUserRepository) Update(user *domain.User) error {
	if m.conflictsLeft > 0 {
		m.conflictsLeft--
		return repository.ErrConflict
	}
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *mockUserRepository) Mutate(id string, fn func(*domain.User) error) (*domain.User, error) {
	for {
		user, err := m.FindByID(id)
		if err != nil {
			return nil, err
		}
		if err := fn(user); err != nil {
			return nil, err
		}
		err = m.Update(user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, err
		}
	}
}
