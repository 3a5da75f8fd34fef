package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"notekeep-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("document update conflict")
)

// mutateRetries bounds the read-modify-write loop in Mutate. Conflicts only
// occur when two requests save the same user document at once, so a handful
// of attempts is plenty.
const mutateRetries = 5

type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	UsernameExists(username string) (bool, error)
	Update(user *domain.User) error
	Mutate(id string, fn func(*domain.User) error) (*domain.User, error)
}

type userRepository struct {
	client *kivik.Client
	dbName string
}

func NewUserRepository(client *kivik.Client, dbName string) UserRepository {
	return &userRepository{
		client: client,
		dbName: dbName,
	}
}

func docID(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (r *userRepository) Create(user *domain.User) error {
	db := r.client.DB(r.dbName)

	if _, err := db.Put(context.Background(), docID(user.ID), user); err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	var user domain.User
	if err := db.Get(context.Background(), docID(id)).ScanDoc(&user); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"username": username,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query user by username: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNotFound
	}

	var user domain.User
	if err := rows.ScanDoc(&user); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UsernameExists(username string) (bool, error) {
	_, err := r.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update saves the whole user document. The document's revision rides along
// in user.Rev, so a save racing another writer fails with ErrConflict
// instead of silently clobbering the other write.
func (r *userRepository) Update(user *domain.User) error {
	db := r.client.DB(r.dbName)

	if _, err := db.Put(context.Background(), docID(user.ID), user); err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return ErrConflict
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Mutate runs fn against a fresh copy of the user document and saves the
// result, retrying the whole cycle when the save hits a revision conflict.
// Concurrent note edits under the same user therefore both land, each
// applied to a document that already contains the other.
func (r *userRepository) Mutate(id string, fn func(*domain.User) error) (*domain.User, error) {
	for attempt := 0; attempt < mutateRetries; attempt++ {
		user, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}

		if err := fn(user); err != nil {
			return nil, err
		}

		err = r.Update(user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed to save user %s after %d attempts: %w", id, mutateRetries, ErrConflict)
}
