package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"Userdeck/forms"
	"Userdeck/models"
	"Userdeck/session"
	"Userdeck/store"
)

//go:embed templates
var templatesFS embed.FS

var pageNames = []string{"login", "register", "dashboard", "account", "users"}

type Handler struct {
	users    store.Users
	sessions *session.Manager
	pages    map[string]*template.Template
}

func New(users store.Users, sessions *session.Manager) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templatesFS,
			"templates/layouts/base.html",
			"templates/pages/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		// Absent Form/Errors keys render as empty rather than erroring.
		pages[name] = tmpl.Option("missingkey=zero")
	}

	return &Handler{users: users, sessions: sessions, pages: pages}, nil
}

type pageData struct {
	Flashes []session.FlashMessage
	User    *models.User
	Form    map[string]string
	Errors  forms.Errors
	Users   []models.User
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data *pageData) {
	if data == nil {
		data = &pageData{}
	}
	data.Flashes = h.sessions.Flashes(w, r)
	if data.User == nil {
		data.User = session.UserFrom(r.Context())
	}

	if err := h.pages[page].ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering template", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
