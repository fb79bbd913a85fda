package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/pkg/configpkg"
	"github.com/bankist/bankist/pkg/schedpkg"
)

func testConfig() configpkg.Config {
	return configpkg.Config{
		SessionDuration:   120 * time.Second,
		SessionTick:       time.Second,
		LoanApprovalDelay: 2500 * time.Millisecond,
	}
}

func testAccounts(now time.Time) []domain.Account {
	amounts := func(values ...float64) []decimal.Decimal {
		out := make([]decimal.Decimal, 0, len(values))
		for _, v := range values {
			out = append(out, decimal.NewFromFloat(v))
		}

		return out
	}

	return []domain.Account{
		{
			Owner:         "Jessica Davis",
			Movements:     amounts(5000, -150),
			MovementDates: []time.Time{now.AddDate(0, 0, -30), now},
			InterestRate:  decimal.NewFromFloat(1.5),
			Pin:           2222,
			Currency:      "USD",
			Locale:        "en-US",
		},
		{
			Owner:         "Sofia Ramos Carvalho",
			Movements:     amounts(200, -50),
			MovementDates: []time.Time{now.AddDate(0, 0, -1), now},
			InterestRate:  decimal.NewFromFloat(1.2),
			Pin:           1111,
			Currency:      "EUR",
			Locale:        "pt-PT",
		},
	}
}

func newTestServer(t *testing.T) (*Server, *schedpkg.Manual) {
	t.Helper()

	sched := schedpkg.NewManual()
	server := New(testAccounts(time.Now()), sched, zerolog.Nop(), testConfig())

	return server, sched
}

func do(t *testing.T, server *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	if token != "" {
		request.Header.Set("Authorization", "bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

type loginData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Greeting string `json:"greeting"`
	Now      string `json:"now"`
}

func login(t *testing.T, server *Server, username string, pin int) loginData {
	t.Helper()

	recorder := do(t, server, http.MethodPost, "/sessions", "", map[string]any{
		"username": username,
		"pin":      pin,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data loginData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.NotEmpty(t, res.Data.Token)

	return res.Data
}

type statementData struct {
	Owner     string `json:"owner"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
	Movements []struct {
		Type      string `json:"type"`
		Amount    string `json:"amount"`
		Formatted string `json:"formatted"`
		Date      string `json:"date"`
	} `json:"movements"`
	Summary struct {
		In       string `json:"in"`
		Out      string `json:"out"`
		Interest string `json:"interest"`
	} `json:"summary"`
}

func statement(t *testing.T, server *Server, token, query string) statementData {
	t.Helper()

	recorder := do(t, server, http.MethodGet, "/accounts/statement"+query, token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data statementData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return res.Data
}

func TestLoginRejections(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	testCases := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{name: "WrongPin", body: map[string]any{"username": "jd", "pin": 9999}, wantCode: http.StatusUnauthorized},
		{name: "UnknownUsername", body: map[string]any{"username": "zz", "pin": 2222}, wantCode: http.StatusUnauthorized},
		{name: "MissingPin", body: map[string]any{"username": "jd"}, wantCode: http.StatusBadRequest},
		{name: "MissingUsername", body: map[string]any{"pin": 2222}, wantCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			recorder := do(t, server, http.MethodPost, "/sessions", "", tc.body)
			require.Equal(t, tc.wantCode, recorder.Code)
		})
	}
}

func TestLoginAndCountdown(t *testing.T) {
	t.Parallel()

	server, sched := newTestServer(t)

	session := login(t, server, "jd", 2222)
	require.Equal(t, "jd", session.Username)
	require.Contains(t, session.Greeting, "Good ")
	require.Contains(t, session.Greeting, "Jessica!")
	require.NotEmpty(t, session.Now)

	recorder := do(t, server, http.MethodGet, "/sessions/countdown", session.Token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"02:00"`)

	sched.Advance()

	recorder = do(t, server, http.MethodGet, "/sessions/countdown", session.Token, nil)
	require.Contains(t, recorder.Body.String(), `"01:59"`)
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "NoHeader", token: ""},
		{name: "NotAToken", token: "not-a-uuid"},
		{name: "UnknownToken", token: "8a7b2c61-0a44-4f6b-9f6e-3d2c1b0a9e8f"},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			recorder := do(t, server, http.MethodGet, "/accounts/statement", tc.token, nil)
			require.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestStatement(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	session := login(t, server, "jd", 2222)

	got := statement(t, server, session.Token, "")
	require.Equal(t, "Jessica Davis", got.Owner)
	require.Equal(t, "USD", got.Currency)
	require.Len(t, got.Movements, 2)

	// Most recent first.
	require.Equal(t, "-150", got.Movements[0].Amount)
	require.Equal(t, "withdrawal", got.Movements[0].Type)
	require.Equal(t, "Today", got.Movements[0].Date)
	require.Equal(t, "5000", got.Movements[1].Amount)
	require.Equal(t, "deposit", got.Movements[1].Type)

	require.Contains(t, got.Balance, "850")
	require.Contains(t, got.Balance, "$")
	require.Contains(t, got.Summary.Out, "150")
	require.Contains(t, got.Summary.Interest, "75")
}

func TestStatementSorted(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	session := login(t, server, "jd", 2222)

	got := statement(t, server, session.Token, "?sorted=true")
	require.Len(t, got.Movements, 2)
	require.Equal(t, "5000", got.Movements[0].Amount)
	require.Equal(t, "-150", got.Movements[1].Amount)
}

func TestTransferFlow(t *testing.T) {
	t.Parallel()

	server, sched := newTestServer(t)
	sender := login(t, server, "jd", 2222)

	for i := 0; i < 50; i++ {
		sched.Advance()
	}

	recorder := do(t, server, http.MethodPost, "/transfers", sender.Token, map[string]any{
		"to":     "src",
		"amount": "500",
	})
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// The transfer reset the countdown.
	recorder = do(t, server, http.MethodGet, "/sessions/countdown", sender.Token, nil)
	require.Contains(t, recorder.Body.String(), `"02:00"`)

	got := statement(t, server, sender.Token, "")
	require.Equal(t, "-500", got.Movements[0].Amount)

	receiver := login(t, server, "src", 1111)
	got = statement(t, server, receiver.Token, "")
	require.Equal(t, "500", got.Movements[0].Amount)
	require.Equal(t, "deposit", got.Movements[0].Type)
}

func TestTransferRejections(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	session := login(t, server, "jd", 2222)

	testCases := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{name: "SelfTransfer", body: map[string]any{"to": "jd", "amount": "10"}, wantCode: http.StatusBadRequest},
		{name: "NegativeAmount", body: map[string]any{"to": "src", "amount": "-10"}, wantCode: http.StatusBadRequest},
		{name: "UnknownReceiver", body: map[string]any{"to": "zz", "amount": "10"}, wantCode: http.StatusNotFound},
		{name: "InsufficientBalance", body: map[string]any{"to": "src", "amount": "100000"}, wantCode: http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			recorder := do(t, server, http.MethodPost, "/transfers", session.Token, tc.body)
			require.Equal(t, tc.wantCode, recorder.Code)

			got := statement(t, server, session.Token, "")
			require.Len(t, got.Movements, 2)
		})
	}
}

func TestLoanFlow(t *testing.T) {
	t.Parallel()

	server, sched := newTestServer(t)
	session := login(t, server, "jd", 2222)

	recorder := do(t, server, http.MethodPost, "/loans", session.Token, map[string]any{"amount": "1000"})
	require.Equal(t, http.StatusAccepted, recorder.Code)

	// Accepted, not yet applied.
	got := statement(t, server, session.Token, "")
	require.Len(t, got.Movements, 2)

	sched.Advance()

	got = statement(t, server, session.Token, "")
	require.Len(t, got.Movements, 3)
	require.Equal(t, "1000", got.Movements[0].Amount)
	require.Equal(t, "deposit", got.Movements[0].Type)
}

func TestLoanRejected(t *testing.T) {
	t.Parallel()

	server, sched := newTestServer(t)
	session := login(t, server, "src", 1111)

	recorder := do(t, server, http.MethodPost, "/loans", session.Token, map[string]any{"amount": "5000"})
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	sched.Advance()

	got := statement(t, server, session.Token, "")
	require.Len(t, got.Movements, 2)
}

func TestCloseAccount(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	session := login(t, server, "src", 1111)

	recorder := do(t, server, http.MethodDelete, "/accounts", session.Token, map[string]any{
		"username": "src",
		"pin":      1111,
	})
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// The session referencing the closed account is gone with it.
	recorder = do(t, server, http.MethodGet, "/accounts/statement", session.Token, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/sessions", "", map[string]any{"username": "src", "pin": 1111})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	require.Equal(t, 1, server.Store.Len())
}

func TestCloseAccountWrongPin(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	session := login(t, server, "src", 1111)

	recorder := do(t, server, http.MethodDelete, "/accounts", session.Token, map[string]any{
		"username": "src",
		"pin":      9999,
	})
	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.Equal(t, 2, server.Store.Len())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	session := login(t, server, "jd", 2222)

	recorder := do(t, server, http.MethodDelete, "/sessions", session.Token, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/sessions/countdown", session.Token, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	server, sched := newTestServer(t)
	session := login(t, server, "jd", 2222)

	for i := 0; i < 120; i++ {
		sched.Advance()
	}

	recorder := do(t, server, http.MethodGet, "/accounts/statement", session.Token, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}
