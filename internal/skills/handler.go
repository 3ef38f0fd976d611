package skills

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/portfolio/internal/cache"
	"github.com/2beens/portfolio/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=skills

const listCacheKey = "skills:all"

type skillsRepo interface {
	Add(ctx context.Context, skill *Skill) error
	All(ctx context.Context) ([]*Skill, error)
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	repo  skillsRepo
	cache cache.Cache
}

func NewHandler(repo skillsRepo, listCache cache.Cache) *Handler {
	return &Handler{
		repo:  repo,
		cache: listCache,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, adminOnly func(http.Handler) http.Handler) {
	router.HandleFunc("/api/skills", handler.handleAll).Methods("GET").Name("skills-all")
	router.Handle("/api/skills", adminOnly(http.HandlerFunc(handler.handleAdd))).Methods("POST", "OPTIONS").Name("skills-add")
	router.Handle("/api/skills/{id}", adminOnly(http.HandlerFunc(handler.handleDelete))).Methods("DELETE", "OPTIONS").Name("skills-delete")
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	var skills []*Skill
	if handler.cache.Get(listCacheKey, &skills) {
		pkg.WriteJSON(w, skills, http.StatusOK)
		return
	}

	skills, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all skills: %s", err)
		pkg.WriteJSONError(w, "failed to get skills", http.StatusInternalServerError)
		return
	}
	if skills == nil {
		skills = []*Skill{}
	}

	if err := handler.cache.Set(listCacheKey, skills); err != nil {
		log.Errorf("cache skills: %s", err)
	}
	pkg.WriteJSON(w, skills, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var skill Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		log.Errorf("add skill, unmarshal json: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	skill.ID = 0

	if strings.TrimSpace(skill.Name) == "" {
		pkg.WriteJSONError(w, ErrSkillNameEmpty.Error(), http.StatusBadRequest)
		return
	}

	err := handler.repo.Add(r.Context(), &skill)
	if errors.Is(err, ErrSkillExists) {
		pkg.WriteJSONError(w, "skill already exists", http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("add skill [%s]: %s", skill.Name, err)
		pkg.WriteJSONError(w, "failed to add skill", http.StatusInternalServerError)
		return
	}
	handler.cache.Delete(listCacheKey)

	log.Tracef("new skill %d: [%s] added", skill.ID, skill.Name)
	pkg.WriteJSON(w, skill, http.StatusCreated)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		pkg.WriteJSONError(w, "invalid skill id", http.StatusBadRequest)
		return
	}

	err = handler.repo.Delete(r.Context(), id)
	if errors.Is(err, ErrSkillNotFound) {
		pkg.WriteJSONError(w, "skill not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete skill %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to delete skill", http.StatusInternalServerError)
		return
	}
	handler.cache.Delete(listCacheKey)

	pkg.WriteJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
