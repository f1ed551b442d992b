package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accessexplorer/internal/chains"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/httputil"
	"accessexplorer/pkg/requestcontext"
)

// Searcher is the search operation consumed by Handler.
type Searcher interface {
	Search(ctx context.Context, chainID int64, address string) (Result, error)
	Navigate(ctx context.Context, chainName, entityID string) error
}

// ChainLookup resolves chain ids to metadata.
type ChainLookup interface {
	Get(id int64) (chains.Chain, error)
}

// Handler serves address search.
type Handler struct {
	search Searcher
	chains ChainLookup
	logger *slog.Logger
}

func NewHandler(search Searcher, lookup ChainLookup, logger *slog.Logger) *Handler {
	return &Handler{search: search, chains: lookup, logger: logger}
}

// Register mounts the search route on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/explorer/{chainId}/search/{address}", h.handleSearch)
	r.Post("/api/explorer/{chainId}/search/navigate", h.handleNavigate)
}

type navigateRequest struct {
	ID string `json:"id"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := chains.ParseID(chi.URLParam(r, "chainId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	chain, err := h.chains.Get(id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.search.Search(ctx, chain.ID, chi.URLParam(r, "address"))
	if err != nil {
		if dErrors.HTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "search failed",
				"request_id", requestID,
				"chain_id", chain.ID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := chains.ParseID(chi.URLParam(r, "chainId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	chain, err := h.chains.Get(id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.search.Navigate(ctx, chain.Name, req.ID); err != nil {
		h.logger.WarnContext(ctx, "navigate rejected",
			"request_id", requestcontext.RequestID(ctx),
			"entity_id", req.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
