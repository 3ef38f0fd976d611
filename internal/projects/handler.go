package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/portfolio/internal/cache"
	"github.com/2beens/portfolio/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=projects

const listCacheKey = "projects:all"

type projectsRepo interface {
	Add(ctx context.Context, project *Project) error
	All(ctx context.Context) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int) error
}

type deleteProjectRequest struct {
	ID int `json:"id"`
}

type Handler struct {
	repo  projectsRepo
	cache cache.Cache
}

func NewHandler(repo projectsRepo, listCache cache.Cache) *Handler {
	return &Handler{
		repo:  repo,
		cache: listCache,
	}
}

// SetupRoutes registers the projects API. Everything but the listing is
// wrapped with adminOnly.
func (handler *Handler) SetupRoutes(router *mux.Router, adminOnly func(http.Handler) http.Handler) {
	router.HandleFunc("/api/projects", handler.handleAll).Methods("GET").Name("projects-all")
	router.Handle("/api/projects", adminOnly(http.HandlerFunc(handler.handleAdd))).Methods("POST", "OPTIONS").Name("projects-add")
	router.Handle("/api/projects", adminOnly(http.HandlerFunc(handler.handleUpdate))).Methods("PUT").Name("projects-update")
	router.Handle("/api/projects", adminOnly(http.HandlerFunc(handler.handleDelete))).Methods("DELETE").Name("projects-delete")
	router.Handle("/api/projects/{id}", adminOnly(http.HandlerFunc(handler.handleDeleteByID))).Methods("DELETE", "OPTIONS").Name("projects-delete-id")
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	var projects []*Project
	if handler.cache.Get(listCacheKey, &projects) {
		pkg.WriteJSON(w, projects, http.StatusOK)
		return
	}

	projects, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all projects: %s", err)
		pkg.WriteJSONError(w, "failed to get projects", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []*Project{}
	}

	if err := handler.cache.Set(listCacheKey, projects); err != nil {
		log.Errorf("cache projects: %s", err)
	}
	pkg.WriteJSON(w, projects, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var project Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Errorf("add project, unmarshal json: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	project.ID = 0

	if err := project.Validate(); err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Add(r.Context(), &project); err != nil {
		log.Errorf("add project: %s", err)
		pkg.WriteJSONError(w, "failed to add project", http.StatusInternalServerError)
		return
	}
	handler.cache.Delete(listCacheKey)

	log.Tracef("new project %d: [%s] added", project.ID, project.Name)
	pkg.WriteJSON(w, project, http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var project Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Errorf("update project, unmarshal json: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if project.ID <= 0 {
		pkg.WriteJSONError(w, "project id is required", http.StatusBadRequest)
		return
	}
	if err := project.Validate(); err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := handler.repo.Update(r.Context(), &project)
	if errors.Is(err, ErrProjectNotFound) {
		pkg.WriteJSONError(w, "project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update project %d: %s", project.ID, err)
		pkg.WriteJSONError(w, "failed to update project", http.StatusInternalServerError)
		return
	}
	handler.cache.Delete(listCacheKey)

	pkg.WriteJSON(w, project, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID <= 0 {
		pkg.WriteJSONError(w, "project id is required", http.StatusBadRequest)
		return
	}
	handler.delete(w, r, req.ID)
}

func (handler *Handler) handleDeleteByID(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		pkg.WriteJSONError(w, "invalid project id", http.StatusBadRequest)
		return
	}
	handler.delete(w, r, id)
}

func (handler *Handler) delete(w http.ResponseWriter, r *http.Request, id int) {
	err := handler.repo.Delete(r.Context(), id)
	if errors.Is(err, ErrProjectNotFound) {
		pkg.WriteJSONError(w, "project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete project %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to delete project", http.StatusInternalServerError)
		return
	}
	handler.cache.Delete(listCacheKey)

	log.Tracef("project %d deleted", id)
	pkg.WriteJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
