package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"Userdeck/forms"
	"Userdeck/store"
)

// Register renders and accepts the registration form. Already
// authenticated users are sent back to the dashboard.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Current(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, "register", nil)
		return
	}

	form := forms.RegisterForm{
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	errs, err := form.Validate(r.Context(), h.users)
	if err != nil {
		slog.Error("Registration validation failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !errs.Valid() {
		h.render(w, r, "register", &pageData{
			Form:   map[string]string{"email": form.Email},
			Errors: errs,
		})
		return
	}

	user, err := h.users.Create(r.Context(), form.Email, form.Password, false)
	if err != nil {
		// The store's uniqueness guard can still fire if a concurrent
		// registration won the race after our pre-check passed.
		if errors.Is(err, store.ErrDuplicateEmail) {
			errs = forms.Errors{"email": {"This email is already registered."}}
			h.render(w, r, "register", &pageData{
				Form:   map[string]string{"email": form.Email},
				Errors: errs,
			})
			return
		}
		slog.Error("Registration failed", "email", form.Email, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("User registered", "email", user.Email, "user_id", user.ID)
	h.sessions.Flash(w, r, "success", "Registration successful. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Login renders and accepts the login form. The failure message is the
// same for an unknown email and a wrong password so that accounts cannot
// be enumerated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Current(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, "login", nil)
		return
	}

	form := forms.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if errs := form.Validate(); !errs.Valid() {
		h.render(w, r, "login", &pageData{
			Form:   map[string]string{"email": form.Email},
			Errors: errs,
		})
		return
	}

	user, err := h.users.FindByEmail(r.Context(), form.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("Login lookup failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if user == nil || !store.VerifyPassword(user, form.Password) {
		slog.Warn("Login failed", "email", form.Email)
		h.sessions.Flash(w, r, "danger", "Invalid email or password")
		h.render(w, r, "login", &pageData{
			Form: map[string]string{"email": form.Email},
		})
		return
	}

	if err := h.sessions.Establish(w, r, user); err != nil {
		slog.Error("Failed to establish session", "email", form.Email, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("User logged in", "email", user.Email, "user_id", user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout terminates the session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Terminate(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
