// Package accountdelivery manages the delivery layer of accounts: the
// statement view and account closing.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/internal/ledger"
	"github.com/bankist/bankist/internal/middleware"
	"github.com/bankist/bankist/pkg/errorspkg"
	"github.com/bankist/bankist/pkg/formatpkg"
	"github.com/bankist/bankist/pkg/web"
)

// Service provides the service layer interface needed by the account delivery layer.
type Service interface {
	Get(ctx context.Context, username string) (domain.Account, error)
	Close(ctx context.Context, username string, pin int) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service

	now func() time.Time
}

// NewHandler returns an account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as, now: time.Now}
}

type statementRequest struct {
	Sorted bool `form:"sorted"`
}

type movementResponse struct {
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
	Date      string `json:"date"`
}

type summaryResponse struct {
	In       string `json:"in"`
	Out      string `json:"out"`
	Interest string `json:"interest"`
}

type statementResponse struct {
	Owner     string             `json:"owner"`
	Currency  string             `json:"currency"`
	Balance   string             `json:"balance"`
	Movements []movementResponse `json:"movements"`
	Summary   summaryResponse    `json:"summary"`
}

func movementType(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "deposit"
	}

	return "withdrawal"
}

// Statement handles the http request for the session account's statement:
// movements most recent first with day labels, balance and summary totals,
// all currency strings formatted for the account locale.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req statementRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	session := middleware.SessionFromContext(gctx)

	account, err := h.service.Get(ctx, session.Username)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	now := h.now()

	movements := ledger.Movements(account, req.Sorted)
	rows := make([]movementResponse, 0, len(movements))

	for _, m := range movements {
		rows = append(rows, movementResponse{
			Type:      movementType(m.Amount),
			Amount:    m.Amount.String(),
			Formatted: formatpkg.Currency(m.Amount, account.Locale, account.Currency),
			Date:      formatpkg.RelativeDayLabel(m.Date, now, account.Locale),
		})
	}

	res := statementResponse{
		Owner:     account.Owner,
		Currency:  account.Currency,
		Balance:   formatpkg.Currency(ledger.Balance(account), account.Locale, account.Currency),
		Movements: rows,
		Summary: summaryResponse{
			In:       formatpkg.Currency(ledger.TotalDeposits(account), account.Locale, account.Currency),
			Out:      formatpkg.Currency(ledger.TotalWithdrawals(account), account.Locale, account.Currency),
			Interest: formatpkg.Currency(ledger.TotalInterest(account), account.Locale, account.Currency),
		},
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type closeRequest struct {
	Username string `json:"username" binding:"required"`
	Pin      int    `json:"pin" binding:"required,min=1"`
}

// Close handles the http request to delete an account.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req closeRequest
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

	if err := h.service.Close(ctx, req.Username, req.Pin); err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrWrongPin:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
