package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDemo(t *testing.T) {
	t.Parallel()

	accounts := Demo(time.Now())
	require.Len(t, accounts, 2)

	for _, account := range accounts {
		require.Len(t, account.MovementDates, len(account.Movements))
		require.NotZero(t, account.Pin)
		require.NotEmpty(t, account.Currency)
		require.NotEmpty(t, account.Locale)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	raw := `[
		{
			"owner": "Ada Lovelace",
			"movements": [100, -20.5],
			"movement_dates": ["2023-07-01T12:00:00Z", "2023-07-02T12:00:00Z"],
			"interest_rate": 1.1,
			"pin": 4242,
			"currency": "EUR",
			"locale": "pt-PT"
		}
	]`

	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	accounts, err := Load(path)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	account := accounts[0]
	require.Equal(t, "Ada Lovelace", account.Owner)
	require.Equal(t, 4242, account.Pin)
	require.Equal(t, "100", account.Movements[0].String())
	require.Equal(t, "-20.5", account.Movements[1].String())
	require.Len(t, account.MovementDates, 2)
}

func TestLoadEmptyPathFallsBackToDemo(t *testing.T) {
	t.Parallel()

	accounts, err := Load("")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadRejectsBadRecords(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
	}{
		{
			name: "UnsupportedCurrency",
			raw: `[{"owner": "Ada Lovelace", "movements": [], "movement_dates": [],
				"interest_rate": 1, "pin": 4242, "currency": "GBP", "locale": "en-GB"}]`,
		},
		{
			name: "MismatchedDates",
			raw: `[{"owner": "Ada Lovelace", "movements": [100], "movement_dates": [],
				"interest_rate": 1, "pin": 4242, "currency": "EUR", "locale": "pt-PT"}]`,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "accounts.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.raw), 0o600))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}
