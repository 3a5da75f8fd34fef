package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"notekeep-server/internal/domain"
	"notekeep-server/internal/middleware"
	"notekeep-server/internal/service"
	"notekeep-server/pkg/response"

	"github.com/gorilla/mux"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	note, err := h.noteService.Create(userID, req.Title, req.Content)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Note created successfully",
		"note":    note,
	})
}

// List slices the collection with the _start/_limit query parameters and
// returns content-truncated items.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	start, _ := strconv.Atoi(r.URL.Query().Get("_start"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("_limit"))

	notes, err := h.noteService.List(userID, start, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	noteID := mux.Vars(r)["noteId"]

	note, err := h.noteService.GetByID(userID, noteID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	noteID := mux.Vars(r)["noteId"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	note, err := h.noteService.Update(userID, noteID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Note updated successfully",
		"note":    note,
	})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	noteID := mux.Vars(r)["noteId"]

	if err := h.noteService.Delete(userID, noteID); err != nil {
		h.writeError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Note deleted successfully")
}

// writeError keeps the two not-found conditions distinct on the wire and
// collapses everything else to a 500.
func (h *NoteHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(w, "Note not found")
	default:
		response.InternalError(w, err.Error())
	}
}
