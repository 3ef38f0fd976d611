// Package pages renders the public site and the admin area. The admin
// pages do not check the session themselves, the access gate in front of
// them already did.
package pages

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/2beens/portfolio/internal/messages"
	"github.com/2beens/portfolio/internal/projects"
	"github.com/2beens/portfolio/internal/skills"
	"github.com/2beens/portfolio/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

type projectsLister interface {
	All(ctx context.Context) ([]*projects.Project, error)
}

type skillsLister interface {
	All(ctx context.Context) ([]*skills.Skill, error)
}

type messagesLister interface {
	All(ctx context.Context) ([]*messages.Message, error)
}

type pageData struct {
	Title    string
	Admin    bool
	Projects []*projects.Project
	Skills   []*skills.Skill
	Messages []*messages.Message
	Unread   int
}

type Handler struct {
	projects  projectsLister
	skills    skillsLister
	messages  messagesLister
	templates map[string]*template.Template
}

func NewHandler(
	projectsRepo projectsLister,
	skillsRepo skillsLister,
	messagesRepo messagesLister,
) (*Handler, error) {
	templates := make(map[string]*template.Template)
	for _, page := range []string{
		"home", "login", "admin", "admin_projects", "admin_skills", "admin_messages",
	} {
		t, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &Handler{
		projects:  projectsRepo,
		skills:    skillsRepo,
		messages:  messagesRepo,
		templates: templates,
	}, nil
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/", handler.handleHome).Methods("GET").Name("page-home")
	router.HandleFunc("/login", handler.handleLogin).Methods("GET").Name("page-login")
	router.HandleFunc("/admin", handler.handleAdmin).Methods("GET").Name("page-admin")
	router.HandleFunc("/admin/projects", handler.handleAdminProjects).Methods("GET").Name("page-admin-projects")
	router.HandleFunc("/admin/skills", handler.handleAdminSkills).Methods("GET").Name("page-admin-skills")
	router.HandleFunc("/admin/messages", handler.handleAdminMessages).Methods("GET").Name("page-admin-messages")
}

func (handler *Handler) render(w http.ResponseWriter, page string, data pageData) {
	var buf bytes.Buffer
	if err := handler.templates[page].ExecuteTemplate(&buf, "base", data); err != nil {
		log.Errorf("render page %s: %s", page, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.HTML, buf.Bytes(), http.StatusOK)
}

func (handler *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Portfolio"}
	var err error
	if data.Projects, err = handler.projects.All(r.Context()); err != nil {
		log.Errorf("home page, get projects: %s", err)
	}
	if data.Skills, err = handler.skills.All(r.Context()); err != nil {
		log.Errorf("home page, get skills: %s", err)
	}
	handler.render(w, "home", data)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, _ *http.Request) {
	handler.render(w, "login", pageData{Title: "Login"})
}

func (handler *Handler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := pageData{Title: "Admin", Admin: true}

	var err error
	if data.Projects, err = handler.projects.All(ctx); err != nil {
		handler.failed(w, "admin", err)
		return
	}
	if data.Skills, err = handler.skills.All(ctx); err != nil {
		handler.failed(w, "admin", err)
		return
	}
	if data.Messages, err = handler.messages.All(ctx); err != nil {
		handler.failed(w, "admin", err)
		return
	}
	for _, m := range data.Messages {
		if !m.Read {
			data.Unread++
		}
	}
	handler.render(w, "admin", data)
}

func (handler *Handler) handleAdminProjects(w http.ResponseWriter, r *http.Request) {
	all, err := handler.projects.All(r.Context())
	if err != nil {
		handler.failed(w, "admin_projects", err)
		return
	}
	handler.render(w, "admin_projects", pageData{Title: "Projects", Admin: true, Projects: all})
}

func (handler *Handler) handleAdminSkills(w http.ResponseWriter, r *http.Request) {
	all, err := handler.skills.All(r.Context())
	if err != nil {
		handler.failed(w, "admin_skills", err)
		return
	}
	handler.render(w, "admin_skills", pageData{Title: "Skills", Admin: true, Skills: all})
}

func (handler *Handler) handleAdminMessages(w http.ResponseWriter, r *http.Request) {
	all, err := handler.messages.All(r.Context())
	if err != nil {
		handler.failed(w, "admin_messages", err)
		return
	}
	handler.render(w, "admin_messages", pageData{Title: "Messages", Admin: true, Messages: all})
}

func (handler *Handler) failed(w http.ResponseWriter, page string, err error) {
	log.Errorf("page %s: %s", page, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
