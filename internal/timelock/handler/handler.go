package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,ChainLookup

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"accessexplorer/internal/chains"
	"accessexplorer/internal/timelock/models"
	"accessexplorer/internal/timelock/service"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/httputil"
	"accessexplorer/pkg/requestcontext"
)

// Service is the timelock read surface consumed by the HTTP layer.
type Service interface {
	Overview(ctx context.Context, chainID int64, address string) (service.Overview, error)
	Signers(ctx context.Context, chainID int64, address string, history bool) ([]models.Signer, error)
	Operations(ctx context.Context, chainID int64, address string) ([]models.Operation, error)
	OperationState(ctx context.Context, chainID int64, address, operationID string) (service.OperationStatus, error)
}

// ChainLookup resolves chain metadata used for display fields.
type ChainLookup interface {
	Get(id int64) (chains.Chain, error)
}

// Handler serves the timelock explorer endpoints.
type Handler struct {
	service Service
	chains  ChainLookup
	logger  *slog.Logger
}

// New creates a timelock Handler.
func New(svc Service, lookup ChainLookup, logger *slog.Logger) *Handler {
	return &Handler{service: svc, chains: lookup, logger: logger}
}

// Register mounts the timelock routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/explorer/{chainId}/timelock/{address}", func(r chi.Router) {
		r.Get("/", h.handleOverview)
		r.Get("/signers", h.handleSigners)
		r.Get("/operations", h.handleOperations)
		r.Get("/operations/{operationId}/state", h.handleOperationState)
	})
}

func (h *Handler) chain(r *http.Request) (chains.Chain, error) {
	id, err := chains.ParseID(chi.URLParam(r, "chainId"))
	if err != nil {
		return chains.Chain{}, err
	}
	return h.chains.Get(id)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chain, err := h.chain(r)
	if err != nil {
		h.fail(ctx, w, "resolve chain", err)
		return
	}

	overview, err := h.service.Overview(ctx, chain.ID, chi.URLParam(r, "address"))
	if err != nil {
		h.fail(ctx, w, "timelock overview", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toOverviewResponse(chain, overview))
}

func (h *Handler) handleSigners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chain, err := h.chain(r)
	if err != nil {
		h.fail(ctx, w, "resolve chain", err)
		return
	}

	history := false
	if raw := r.URL.Query().Get("history"); raw != "" {
		history, err = strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "history must be a boolean"))
			return
		}
	}

	signers, err := h.service.Signers(ctx, chain.ID, chi.URLParam(r, "address"), history)
	if err != nil {
		h.fail(ctx, w, "timelock signers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, signersResponse{
		Signers: toSignerResponses(signers),
		Total:   len(signers),
	})
}

func (h *Handler) handleOperations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chain, err := h.chain(r)
	if err != nil {
		h.fail(ctx, w, "resolve chain", err)
		return
	}

	ops, err := h.service.Operations(ctx, chain.ID, chi.URLParam(r, "address"))
	if err != nil {
		h.fail(ctx, w, "timelock operations", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, operationsResponse{
		Operations: toOperationResponses(chain, ops),
		Total:      len(ops),
	})
}

func (h *Handler) handleOperationState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chain, err := h.chain(r)
	if err != nil {
		h.fail(ctx, w, "resolve chain", err)
		return
	}

	status, err := h.service.OperationState(ctx, chain.ID, chi.URLParam(r, "address"), chi.URLParam(r, "operationId"))
	if err != nil {
		h.fail(ctx, w, "timelock operation state", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStateResponse(status))
}

// fail logs server-side failures at error level and client mistakes at warn.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, action string, err error) {
	code := dErrors.CodeOf(err)
	if dErrors.HTTPStatus(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, action+" failed",
			"request_id", requestcontext.RequestID(ctx),
			"code", code,
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, action+" rejected",
			"request_id", requestcontext.RequestID(ctx),
			"code", code,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
