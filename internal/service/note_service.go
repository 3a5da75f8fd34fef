package service

import (
	"errors"
	"strings"
	"time"

	"notekeep-server/internal/domain"
	"notekeep-server/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// List items carry at most truncateMax characters of content; anything
// longer is cut to a truncateKeep-character prefix plus an ellipsis. Full
// content is only served by GetByID.
const (
	truncateMax  = 80
	truncateKeep = 85
)

type NoteService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

func NewNoteService(userRepo repository.UserRepository, log zerolog.Logger) *NoteService {
	return &NoteService{
		userRepo: userRepo,
		log:      log,
	}
}

// Create appends a new note to the owner's collection and returns it with
// its assigned id and timestamps.
func (s *NoteService) Create(userID, title, content string) (*domain.Note, error) {
	now := time.Now()
	note := domain.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.userRepo.Mutate(userID, func(user *domain.User) error {
		user.Notes = append(user.Notes, note)
		user.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, mapUserErr(err)
	}

	return &note, nil
}

// List returns notes in insertion order, sliced by start/limit. limit <= 0
// means no cap. Content is truncated for the list payload.
func (s *NoteService) List(userID string, start, limit int) ([]domain.Note, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	if start < 0 {
		start = 0
	}
	if start > len(user.Notes) {
		start = len(user.Notes)
	}

	end := len(user.Notes)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	notes := make([]domain.Note, 0, end-start)
	for _, note := range user.Notes[start:end] {
		note.Content = truncateContent(note.Content)
		notes = append(notes, note)
	}

	return notes, nil
}

func (s *NoteService) GetByID(userID, noteID string) (*domain.Note, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	for i := range user.Notes {
		if user.Notes[i].ID == noteID {
			return &user.Notes[i], nil
		}
	}

	return nil, ErrNoteNotFound
}

// Update overwrites only the fields present in req and refreshes the note's
// updatedAt. An explicit empty string clears the field.
func (s *NoteService) Update(userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	var updated domain.Note

	_, err := s.userRepo.Mutate(userID, func(user *domain.User) error {
		for i := range user.Notes {
			if user.Notes[i].ID != noteID {
				continue
			}

			if req.Title != nil {
				user.Notes[i].Title = *req.Title
			}
			if req.Content != nil {
				user.Notes[i].Content = *req.Content
			}

			now := time.Now()
			user.Notes[i].UpdatedAt = now
			user.UpdatedAt = now
			updated = user.Notes[i]
			return nil
		}
		return ErrNoteNotFound
	})
	if err != nil {
		return nil, mapUserErr(err)
	}

	return &updated, nil
}

// Delete removes the note from the owner's collection. Deleting the same id
// again reports ErrNoteNotFound.
func (s *NoteService) Delete(userID, noteID string) error {
	_, err := s.userRepo.Mutate(userID, func(user *domain.User) error {
		for i := range user.Notes {
			if user.Notes[i].ID != noteID {
				continue
			}
			user.Notes = append(user.Notes[:i], user.Notes[i+1:]...)
			user.UpdatedAt = time.Now()
			return nil
		}
		return ErrNoteNotFound
	})
	if err != nil {
		return mapUserErr(err)
	}

	s.log.Debug().Str("userId", userID).Str("noteId", noteID).Msg("note deleted")
	return nil
}

func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= truncateMax {
		return content
	}
	if len(runes) > truncateKeep {
		runes = runes[:truncateKeep]
	}
	return strings.TrimSpace(string(runes)) + "…"
}

// mapUserErr translates the repository's not-found into the service-level
// user error, keeping it distinct from ErrNoteNotFound.
func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
