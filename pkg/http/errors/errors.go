package errors

import (
	"encoding/json"
	"net/http"
)

// FailureResponse is the body of every unsuccessful API call.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RespondFailure writes {"success": false, "message": ...} with the given status.
// An empty message is omitted from the body.
func RespondFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(FailureResponse{
		Success: false,
		Message: message,
	})
}

// RespondBadRequest writes a 400 failure carrying the "bad request" token.
func RespondBadRequest(w http.ResponseWriter) {
	RespondFailure(w, http.StatusBadRequest, MsgBadRequest)
}

// RespondNotFound writes a 404 failure carrying the "resource not found" token.
func RespondNotFound(w http.ResponseWriter) {
	RespondFailure(w, http.StatusNotFound, MsgNotFound)
}

// RespondInternalError writes a 500 failure.
func RespondInternalError(w http.ResponseWriter) {
	RespondFailure(w, http.StatusInternalServerError, MsgInternalError)
}

// RespondUnauthorized writes a 401 failure.
func RespondUnauthorized(w http.ResponseWriter) {
	RespondFailure(w, http.StatusUnauthorized, MsgUnauthorized)
}

// RespondForbidden writes a 403 failure.
func RespondForbidden(w http.ResponseWriter) {
	RespondFailure(w, http.StatusForbidden, MsgForbidden)
}
