package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v verbatim as the response body. The API contract returns bare
// objects and arrays, so there is no success envelope.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} body with the given status.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"message": message})
}

func BadRequest(w http.ResponseWriter, message string) {
	Message(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Message(w, http.StatusUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Message(w, http.StatusNotFound, message)
}

func InternalError(w http.ResponseWriter, message string) {
	Message(w, http.StatusInternalServerError, message)
}
