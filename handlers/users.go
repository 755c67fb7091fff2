package handlers

import (
	"log/slog"
	"net/http"
)

// Users is the admin-only listing of every registered account. The
// admin gate has already run; non-admins never reach this handler.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "users", &pageData{Users: users})
}
