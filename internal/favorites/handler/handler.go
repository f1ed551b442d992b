package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accessexplorer/internal/favorites/models"
	"accessexplorer/internal/platform/middleware"
	"accessexplorer/pkg/domain"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/httputil"
	"accessexplorer/pkg/requestcontext"
)

// Service is the favorites surface consumed by Handler.
type Service interface {
	Add(ctx context.Context, owner, entity, address, label string) (*models.Favorite, error)
	Remove(ctx context.Context, owner, entity, address string) error
	Toggle(ctx context.Context, owner, entity, address string) (bool, error)
	IsFavorite(ctx context.Context, owner, entity, address string) (bool, error)
	List(ctx context.Context, owner string) (map[domain.EntityType][]*models.Favorite, error)
}

// Handler serves the authenticated favorites endpoints.
type Handler struct {
	service   Service
	validator middleware.SubjectValidator
	logger    *slog.Logger
}

func New(svc Service, validator middleware.SubjectValidator, logger *slog.Logger) *Handler {
	return &Handler{service: svc, validator: validator, logger: logger}
}

// Register mounts the favorites routes behind bearer authentication.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(middleware.RequireBearer(h.validator, h.logger))
		r.Get("/", h.handleList)
		r.Get("/{entity}/{address}", h.handleGet)
		r.Put("/{entity}/{address}", h.handlePut)
		r.Delete("/{entity}/{address}", h.handleDelete)
		r.Post("/{entity}/{address}/toggle", h.handleToggle)
	})
}

type putRequest struct {
	Label string `json:"label"`
}

type statusResponse struct {
	Entity   string `json:"entity"`
	Address  string `json:"address"`
	Favorite bool   `json:"favorite"`
}

type listResponse struct {
	Favorites map[domain.EntityType][]*models.Favorite `json:"favorites"`
	Total     int                                      `json:"total"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	grouped, err := h.service.List(ctx, requestcontext.Subject(ctx))
	if err != nil {
		h.fail(ctx, w, "list favorites", err)
		return
	}
	total := 0
	for _, fs := range grouped {
		total += len(fs)
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Favorites: grouped, Total: total})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entity, address := chi.URLParam(r, "entity"), chi.URLParam(r, "address")
	ok, err := h.service.IsFavorite(ctx, requestcontext.Subject(ctx), entity, address)
	if err != nil {
		h.fail(ctx, w, "read favorite", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Entity: entity, Address: address, Favorite: ok})
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req putRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(ctx, "invalid favorite request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	f, err := h.service.Add(ctx, requestcontext.Subject(ctx), chi.URLParam(r, "entity"), chi.URLParam(r, "address"), req.Label)
	if err != nil {
		h.fail(ctx, w, "add favorite", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Remove(ctx, requestcontext.Subject(ctx), chi.URLParam(r, "entity"), chi.URLParam(r, "address")); err != nil {
		h.fail(ctx, w, "remove favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entity, address := chi.URLParam(r, "entity"), chi.URLParam(r, "address")
	ok, err := h.service.Toggle(ctx, requestcontext.Subject(ctx), entity, address)
	if err != nil {
		h.fail(ctx, w, "toggle favorite", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Entity: entity, Address: address, Favorite: ok})
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, action string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, action+" failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
