// Package transferdelivery manages the delivery layer of transfers and loans.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/internal/middleware"
	"github.com/bankist/bankist/pkg/errorspkg"
	"github.com/bankist/bankist/pkg/web"
)

// Service provides the service layer interface needed by the transfer delivery layer.
type Service interface {
	Transfer(ctx context.Context, fromUsername, toUsername, amount string) error
	RequestLoan(ctx context.Context, username, amount string) error
}

// SessionReseter restarts a session's logout countdown. Qualifying mutating
// actions reset the countdown from here, the caller of the mutation.
type SessionReseter interface {
	Reset(ctx context.Context, id uuid.UUID) error
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service  Service
	sessions SessionReseter
}

// NewHandler returns a transfer handler.
func NewHandler(ts Service, sessions SessionReseter) *Handler {
	return &Handler{service: ts, sessions: sessions}
}

func bindingError(gctx *gin.Context, l *zerolog.Logger, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		gctx.JSON(http.StatusBadRequest, web.Response{Error: field.Field() + web.GetErrorMsg(field)})

		return
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

type transferRequest struct {
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// Create handles the http request to transfer money to another account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindingError(gctx, l, err)
		return
	}

	session := middleware.SessionFromContext(gctx)

	if err := h.service.Transfer(ctx, session.Username, req.To, req.Amount); err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrSelfTransfer:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	// The transfer counts as user activity.
	if err := h.sessions.Reset(ctx, session.ID); err != nil {
		l.Info().Err(err).Send()
	}

	gctx.Status(http.StatusNoContent)
}

type loanRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// RequestLoan handles the http request for a loan. A granted loan is only
// accepted here; the deposit lands after the approval delay.
func (h *Handler) RequestLoan(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loanRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindingError(gctx, l, err)
		return
	}

	session := middleware.SessionFromContext(gctx)

	if err := h.service.RequestLoan(ctx, session.Username, req.Amount); err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrNegativeAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrLoanNotEligible:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusAccepted)
}
