// Package sessiondelivery manages the delivery layer of sessions.
package sessiondelivery

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/internal/middleware"
	"github.com/bankist/bankist/pkg/errorspkg"
	"github.com/bankist/bankist/pkg/formatpkg"
	"github.com/bankist/bankist/pkg/web"
)

// Service provides the service layer interface needed by the session delivery layer.
type Service interface {
	Login(ctx context.Context, username string, pin int) (domain.Session, domain.Account, error)
	Remaining(ctx context.Context, id uuid.UUID) (int, error)
	Logout(ctx context.Context, id uuid.UUID) error
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	service Service

	now func() time.Time
}

// NewHandler returns a session handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss, now: time.Now}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Pin      int    `json:"pin" binding:"required,min=1"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Greeting string `json:"greeting"`
	Now      string `json:"now"`
}

// Login handles the http request to open a session.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			field := ve[0]
			gctx.JSON(http.StatusBadRequest, web.Response{Error: field.Field() + web.GetErrorMsg(field)})

			return
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	session, account, err := h.service.Login(ctx, req.Username, req.Pin)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound, domain.ErrWrongPin:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	now := h.now()
	firstName := strings.Split(account.Owner, " ")[0]

	res := loginResponse{
		Token:    session.ID.String(),
		Username: account.Username,
		Greeting: formatpkg.Greeting(now.Hour()) + ", " + firstName + "!",
		Now:      formatpkg.Timestamp(now, account.Locale),
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type countdownResponse struct {
	Countdown string `json:"countdown"`
}

// Countdown handles the http request for the remaining session time.
func (h *Handler) Countdown(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	session := middleware.SessionFromContext(gctx)

	remaining, err := h.service.Remaining(ctx, session.ID)
	if err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	res := countdownResponse{Countdown: formatpkg.Countdown(remaining)}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

// Logout handles the http request to end the session without expiring it.
func (h *Handler) Logout(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	session := middleware.SessionFromContext(gctx)

	if err := h.service.Logout(ctx, session.ID); err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	gctx.Status(http.StatusNoContent)
}
