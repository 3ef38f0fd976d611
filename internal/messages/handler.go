package messages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/portfolio/internal/telemetry/metrics"
	"github.com/2beens/portfolio/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=messages

type messagesRepo interface {
	Add(ctx context.Context, msg *Message) error
	All(ctx context.Context) ([]*Message, error)
	SetRead(ctx context.Context, id int, read bool) (*Message, error)
	Delete(ctx context.Context, id int) error
}

type newMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type updateMessageRequest struct {
	ID   int   `json:"id"`
	Read *bool `json:"read"`
}

type deleteMessageRequest struct {
	ID int `json:"id"`
}

type Handler struct {
	repo    messagesRepo
	metrics *metrics.Manager
}

func NewHandler(repo messagesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

// SetupRoutes registers the contact endpoint behind limit and the admin
// endpoints behind adminOnly. limit may be nil.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	limit func(http.Handler) http.Handler,
	adminOnly func(http.Handler) http.Handler,
) {
	var contactHandler http.Handler = http.HandlerFunc(handler.handleNew)
	if limit != nil {
		contactHandler = limit(contactHandler)
	}
	router.Handle("/api/messages", contactHandler).Methods("POST", "OPTIONS").Name("messages-new")
	router.Handle("/api/messages", adminOnly(http.HandlerFunc(handler.handleAll))).Methods("GET").Name("messages-all")
	router.Handle("/api/messages", adminOnly(http.HandlerFunc(handler.handleUpdate))).Methods("PATCH").Name("messages-update")
	router.Handle("/api/messages", adminOnly(http.HandlerFunc(handler.handleDelete))).Methods("DELETE").Name("messages-delete")
}

func (handler *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var req newMessageRequest
	if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			log.Errorf("new message, parse form error: %s", err)
			pkg.WriteJSONError(w, "parse form error", http.StatusBadRequest)
			return
		}
		req = newMessageRequest{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Message: r.PostForm.Get("message"),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new message, unmarshal json: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg := &Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if err := msg.Validate(); err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Add(r.Context(), msg); err != nil {
		log.Errorf("add message from %s: %s", msg.Email, err)
		pkg.WriteJSONError(w, "failed to send message", http.StatusInternalServerError)
		return
	}
	if handler.metrics != nil {
		handler.metrics.CounterContactMessages.Inc()
	}

	log.Tracef("new contact message %d from %s", msg.ID, msg.Email)
	pkg.WriteJSON(w, msg, http.StatusCreated)
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	msgs, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all messages: %s", err)
		pkg.WriteJSONError(w, "failed to get messages", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []*Message{}
	}
	pkg.WriteJSON(w, msgs, http.StatusOK)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID <= 0 || req.Read == nil {
		pkg.WriteJSONError(w, "id and read are required", http.StatusBadRequest)
		return
	}

	msg, err := handler.repo.SetRead(r.Context(), req.ID, *req.Read)
	if errors.Is(err, ErrMessageNotFound) {
		pkg.WriteJSONError(w, "message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update message %d: %s", req.ID, err)
		pkg.WriteJSONError(w, "failed to update message", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, msg, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID <= 0 {
		pkg.WriteJSONError(w, "message id is required", http.StatusBadRequest)
		return
	}

	err := handler.repo.Delete(r.Context(), req.ID)
	if errors.Is(err, ErrMessageNotFound) {
		pkg.WriteJSONError(w, "message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete message %d: %s", req.ID, err)
		pkg.WriteJSONError(w, "failed to delete message", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
