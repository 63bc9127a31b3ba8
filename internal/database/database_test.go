package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"tournaments", "draw_matches", "users", "user_picks", "user_scores", "leaderboard_entries"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}
