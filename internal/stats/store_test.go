package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridiron/internal/database"
	"gridiron/internal/stats"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (stats.Store, *sqlx.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO teams (team_code, team_name, division) VALUES
		('KC', 'Kansas City Chiefs', 'AFC West'),
		('BUF', 'Buffalo Bills', 'AFC East'),
		('SF', 'San Francisco 49ers', 'NFC West')`)
	require.NoError(t, err)

	store := stats.New(db, 5*time.Second)
	return store, db, teardown
}

func TestByPosition_OrderedByPointsThenRank(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO qb_stats (playerid, playername, team, passingyards, passingtds, interceptions, rushingyards, rushingtds, totalpoints, rank) VALUES
		('qb1', 'Patrick Mahomes', 'KC', 4800, 38, 11, 350, 2, 310.2, 1),
		('qb2', 'Josh Allen', 'BUF', 4300, 29, 15, 760, 12, 298.5, 2),
		('qb3', 'Brock Purdy', 'SF', 4280, 31, 11, 144, 2, 298.5, 3)`)
	require.NoError(t, err)

	players, err := store.ByPosition(context.Background(), "QB")
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, "Patrick Mahomes", players[0].Name)
	// Equal points fall back to ascending rank.
	assert.Equal(t, "Josh Allen", players[1].Name)
	assert.Equal(t, "Brock Purdy", players[2].Name)

	for _, p := range players {
		assert.Equal(t, "QB", p.Position)
	}
	assert.InDelta(t, 310.2, players[0].TotalPoints, 0.001)
	assert.Equal(t, int64(4800), players[0].Stats["passing_yards"])
}

func TestByPosition_EmptyTableYieldsEmptyList(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	players, err := store.ByPosition(context.Background(), "RB")
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Len(t, players, 0)
}

func TestByPosition_CaseInsensitiveTag(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO k_stats (playerid, playername, team, fieldgoals, fieldgoalattempts, extrapoints, extrapointattempts, totalpoints, rank) VALUES
		('k1', 'Harrison Butker', 'KC', 33, 38, 38, 38, 145.0, 1)`)
	require.NoError(t, err)

	players, err := store.ByPosition(context.Background(), "k")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "K", players[0].Position)
	assert.Equal(t, int64(33), players[0].Stats["field_goals"])
}

func TestByPosition_DefAggregate(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO lb_stats (playerid, playername, team, tackles, tackles_ast, sacks, tackles_tfl, interceptions, forced_fumbles, fumble_recoveries, passes_defended, qb_hits, totalpoints, rank) VALUES
		('lb1', 'Fred Warner', 'SF', 118, 42, 2.5, 9, 4, 4, 1, 10, 4, 180.5, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO dl_stats (playerid, playername, team, tackles, tackles_ast, sacks, tackles_tfl, interceptions, forced_fumbles, fumble_recoveries, passes_defended, qb_hits, totalpoints, rank) VALUES
		('dl1', 'Chris Jones', 'KC', 49, 19, 10.5, 12, 0, 0, 1, 3, 28, 162.0, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO db_stats (playerid, playername, team, tackles, tackles_ast, sacks, tackles_tfl, interceptions, forced_fumbles, fumble_recoveries, passes_defended, qb_hits, totalpoints, rank) VALUES
		('db1', 'Trent McDuffie', 'KC', 72, 19, 0.5, 7, 0, 3, 1, 8, 6, 190.0, 1)`)
	require.NoError(t, err)

	players, err := store.ByPosition(context.Background(), "DEF")
	require.NoError(t, err)
	require.Len(t, players, 3)

	// Merged by total points descending, carrying each row's own tag.
	assert.Equal(t, "Trent McDuffie", players[0].Name)
	assert.Equal(t, "DB", players[0].Position)
	assert.Equal(t, "Fred Warner", players[1].Name)
	assert.Equal(t, "LB", players[1].Position)
	assert.Equal(t, "Chris Jones", players[2].Name)
	assert.Equal(t, "DL", players[2].Position)

	// Sacks keep their half-sack precision, tackles are whole.
	assert.Equal(t, 10.5, players[2].Stats["sacks"])
	assert.Equal(t, int64(49), players[2].Stats["tackles"])
}

func TestByPosition_NullPointsSortAsZero(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO rb_stats (playerid, playername, team, rushingyards, rushingtds, receptions, receivingyards, receivingtds, totalpoints, rank) VALUES
		('rb1', 'Christian McCaffrey', 'SF', 1459, 14, 67, 564, 7, 322.3, 1),
		('rb2', 'Practice Squad Back', NULL, 12, 0, 1, 4, 0, NULL, 2)`)
	require.NoError(t, err)

	players, err := store.ByPosition(context.Background(), "RB")
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, "Christian McCaffrey", players[0].Name)
	assert.Equal(t, "Practice Squad Back", players[1].Name)
	// NULL points normalize to zero; NULL team stays null.
	assert.Zero(t, players[1].TotalPoints)
	assert.Nil(t, players[1].Team)
	require.NotNil(t, players[0].Team)
	assert.Equal(t, "SF", *players[0].Team)
}

func TestByTeam_KansasCityScenario(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO qb_stats (playerid, playername, team, passingyards, passingtds, interceptions, rushingyards, rushingtds, totalpoints, rank) VALUES
		('qb1', 'Patrick Mahomes', 'KC', 4800, 38, 11, 350, 2, 310.2, 1),
		('qb2', 'Backup Quarterback', 'KC', 3900, 25, 9, 120, 1, 298.5, 2),
		('qb3', 'Josh Allen', 'BUF', 4300, 29, 15, 760, 12, 305.0, 3)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO k_stats (playerid, playername, team, fieldgoals, fieldgoalattempts, extrapoints, extrapointattempts, totalpoints, rank) VALUES
		('k1', 'Harrison Butker', 'KC', 33, 38, 38, 38, 145.0, 1)`)
	require.NoError(t, err)

	players, err := store.ByTeam(context.Background(), "KC")
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, "QB", players[0].Position)
	assert.InDelta(t, 310.2, players[0].TotalPoints, 0.001)
	assert.Equal(t, "QB", players[1].Position)
	assert.InDelta(t, 298.5, players[1].TotalPoints, 0.001)
	assert.Equal(t, "K", players[2].Position)

	// Fan-out rows carry the identity subset only.
	assert.Nil(t, players[0].Stats)
}

func TestByTeam_NoMatchesYieldsEmptyList(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	players, err := store.ByTeam(context.Background(), "SEA")
	require.NoError(t, err)
	assert.Len(t, players, 0)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO qb_stats (playerid, playername, team, passingyards, passingtds, interceptions, rushingyards, rushingtds, totalpoints, rank) VALUES
		('qb1', 'Patrick Mahomes', 'KC', 4800, 38, 11, 350, 2, 310.2, 1),
		('qb2', 'Josh Allen', 'BUF', 4300, 29, 15, 760, 12, 298.5, 2)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO wr_stats (playerid, playername, team, receptions, targets, receivingyards, receivingtds, totalpoints, rank) VALUES
		('wr1', 'Rashee Rice', 'KC', 79, 102, 938, 7, 180.0, 1)`)
	require.NoError(t, err)

	players, err := store.Search(context.Background(), "MAHOMES", "")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Patrick Mahomes", players[0].Name)
	assert.Equal(t, "QB", players[0].Position)
}

func TestSearch_ScopedToPosition(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO qb_stats (playerid, playername, team, passingyards, passingtds, interceptions, rushingyards, rushingtds, totalpoints, rank) VALUES
		('qb1', 'Justin Herbert', NULL, 3134, 20, 7, 228, 3, 201.0, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO wr_stats (playerid, playername, team, receptions, targets, receivingyards, receivingtds, totalpoints, rank) VALUES
		('wr1', 'Justin Jefferson', NULL, 68, 100, 1074, 5, 170.0, 1)`)
	require.NoError(t, err)

	players, err := store.Search(context.Background(), "justin", "WR")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Justin Jefferson", players[0].Name)
	// Scoped search targets one table, so field stats are present.
	assert.Equal(t, int64(100), players[0].Stats["targets"])
}

func TestSearch_InjectionAttemptMatchesNothing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO qb_stats (playerid, playername, team, passingyards, passingtds, interceptions, rushingyards, rushingtds, totalpoints, rank) VALUES
		('qb1', 'Patrick Mahomes', 'KC', 4800, 38, 11, 350, 2, 310.2, 1)`)
	require.NoError(t, err)

	players, err := store.Search(context.Background(), `%' OR '1'='1`, "")
	require.NoError(t, err)
	assert.Len(t, players, 0)
}

func TestSearch_PercentIsLiteral(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	// A bare % must not act as a wildcard.
	_, err := db.Exec(`INSERT INTO qb_stats (playerid, playername, team, passingyards, passingtds, interceptions, rushingyards, rushingtds, totalpoints, rank) VALUES
		('qb1', 'Patrick Mahomes', 'KC', 4800, 38, 11, 350, 2, 310.2, 1)`)
	require.NoError(t, err)

	players, err := store.Search(context.Background(), "%", "")
	require.NoError(t, err)
	assert.Len(t, players, 0)
}

func TestValidationFailsBeforeStore(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.ByPosition(context.Background(), "xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QB")

	_, err = store.Search(context.Background(), "smith", "DEF")
	require.Error(t, err)

	_, err = store.Search(context.Background(), "", "")
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	require.NoError(t, store.Ping(context.Background()))
}
