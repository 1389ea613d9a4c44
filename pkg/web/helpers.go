package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// ParsePathID extracts a non-empty ID from the request path. Returns the ID and a boolean indicating success.
func ParsePathID(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		RespondError(w, logger, http.StatusBadRequest, "Missing "+name+" path parameter")
		return "", false
	}
	return id, true
}

// GetUserID retrieves the authenticated user ID from the request context.
// Returns the user ID and a boolean indicating success.
func GetUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, ok := UserID(r.Context())
	if !ok || userID == "" {
		RespondError(w, logger, http.StatusUnauthorized, "Unauthorized: Missing or invalid user ID")
		return uuid.Nil, false
	}
	parsedUserID, err := uuid.Parse(userID)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, "Invalid user ID: "+userID)
		return uuid.Nil, false
	}
	return parsedUserID, true
}
