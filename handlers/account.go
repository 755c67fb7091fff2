package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"Userdeck/forms"
	"Userdeck/session"
	"Userdeck/store"
)

// Account lets the logged-in user change their email. GET prefills the
// form with the current address; submitting it unchanged is a no-op
// success.
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	user := session.UserFrom(r.Context())

	if r.Method == http.MethodGet {
		h.render(w, r, "account", &pageData{
			Form: map[string]string{"email": user.Email},
		})
		return
	}

	form := forms.EditAccountForm{
		Email:         r.FormValue("email"),
		OriginalEmail: user.Email,
	}

	errs, err := form.Validate(r.Context(), h.users)
	if err != nil {
		slog.Error("Account validation failed", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !errs.Valid() {
		h.render(w, r, "account", &pageData{
			Form:   map[string]string{"email": form.Email},
			Errors: errs,
		})
		return
	}

	if err := h.users.UpdateEmail(r.Context(), user, form.Email); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			h.render(w, r, "account", &pageData{
				Form:   map[string]string{"email": form.Email},
				Errors: forms.Errors{"email": {"This email is already registered."}},
			})
			return
		}
		slog.Error("Failed to update email", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("Account email updated", "user_id", user.ID)
	h.sessions.Flash(w, r, "success", "Your account has been updated.")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}
