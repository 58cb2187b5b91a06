package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"gridiron/internal/config"
	"gridiron/internal/database"
	"gridiron/internal/schema"
)

const batchSize = 100

// fixtureField maps a raw stat column to the key used in the season JSON dumps.
type fixtureField struct {
	column string
	key    string
}

// loadSpec describes how one position's season file maps onto its table.
// Defensive stat feeds report fractional values (half sacks), so those
// tables keep floats; the offensive feeds are whole numbers.
type loadSpec struct {
	file       string
	table      string
	fields     []fixtureField
	fractional bool
}

var defensiveFields = []fixtureField{
	{column: "tackles", key: "TacklesTot"},
	{column: "tackles_ast", key: "TacklesAst"},
	{column: "sacks", key: "TacklesSck"},
	{column: "tackles_tfl", key: "TacklesTfl"},
	{column: "interceptions", key: "TurnoverInt"},
	{column: "forced_fumbles", key: "TurnoverFrcFum"},
	{column: "fumble_recoveries", key: "TurnoverFumRec"},
	{column: "passes_defended", key: "PDef"},
	{column: "qb_hits", key: "QBHit"},
}

var receiverFields = []fixtureField{
	{column: "receptions", key: "ReceivingRec"},
	{column: "targets", key: "Targets"},
	{column: "receivingyards", key: "ReceivingYDS"},
	{column: "receivingtds", key: "ReceivingTD"},
}

var loadSpecs = []loadSpec{
	{file: "QB_season.json", table: "qb_stats", fields: []fixtureField{
		{column: "passingyards", key: "PassingYDS"},
		{column: "passingtds", key: "PassingTD"},
		{column: "interceptions", key: "PassingInt"},
		{column: "rushingyards", key: "RushingYDS"},
		{column: "rushingtds", key: "RushingTD"},
	}},
	{file: "RB_season.json", table: "rb_stats", fields: []fixtureField{
		{column: "rushingyards", key: "RushingYDS"},
		{column: "rushingtds", key: "RushingTD"},
		{column: "receptions", key: "ReceivingRec"},
		{column: "receivingyards", key: "ReceivingYDS"},
		{column: "receivingtds", key: "ReceivingTD"},
	}},
	{file: "WR_season.json", table: "wr_stats", fields: receiverFields},
	{file: "TE_season.json", table: "te_stats", fields: receiverFields},
	{file: "LB_season.json", table: "lb_stats", fields: defensiveFields, fractional: true},
	{file: "DL_season.json", table: "dl_stats", fields: defensiveFields, fractional: true},
	{file: "DB_season.json", table: "db_stats", fields: defensiveFields, fractional: true},
}

func main() {
	dataDir := flag.String("data", "./data", "Directory holding teams.json and the *_season.json fixtures")
	synthetic := flag.Bool("synthetic", false, "Generate synthetic players instead of reading fixtures")
	count := flag.Int("count", 50, "Synthetic players per position")
	flag.Parse()

	log.Info("Starting stats loader...")
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	startTime := time.Now()
	if *synthetic {
		if err := loadSynthetic(db.DB, *count); err != nil {
			log.Fatalf("Synthetic load failed: %s", err)
		}
	} else {
		if err := loadFixtures(db.DB, *dataDir); err != nil {
			log.Fatalf("Fixture load failed: %s", err)
		}
	}
	log.Info("Load complete", "duration", time.Since(startTime))
}

func loadFixtures(db *sql.DB, dataDir string) error {
	if err := loadTeams(db, filepath.Join(dataDir, "teams.json")); err != nil {
		return err
	}

	for _, spec := range loadSpecs {
		path := filepath.Join(dataDir, spec.file)
		rows, err := readFixture(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Warn("Fixture file missing, skipping", "file", spec.file)
				continue
			}
			return err
		}
		if err := loadPosition(db, spec, rows); err != nil {
			return fmt.Errorf("loading %s: %w", spec.table, err)
		}
	}

	kickers, err := readFixture(filepath.Join(dataDir, "K_season.json"))
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Fixture file missing, skipping", "file", "K_season.json")
			return nil
		}
		return err
	}
	if err := loadKickers(db, kickers); err != nil {
		return fmt.Errorf("loading k_stats: %w", err)
	}
	return nil
}

func readFixture(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func loadTeams(db *sql.DB, path string) error {
	rows, err := readFixture(path)
	if err != nil {
		return err
	}

	loaded := 0
	for _, row := range rows {
		_, err := db.Exec(`INSERT INTO teams (team_code, team_name, division)
			VALUES (?, ?, ?)
			ON CONFLICT(team_code) DO UPDATE
			SET team_name = excluded.team_name,
			    division = excluded.division`,
			row["team_code"], row["team_name"], row["division"])
		if err != nil {
			log.Error("Failed to load team", "team", row["team_name"], "error", err)
			continue
		}
		loaded++
	}
	log.Info("Loaded teams", "count", loaded)
	return nil
}

func loadPosition(db *sql.DB, spec loadSpec, rows []map[string]any) error {
	var batch [][]any
	for _, row := range rows {
		id := fixtureString(row, "PlayerId")
		name := fixtureString(row, "PlayerName")
		if id == "" || name == "" {
			log.Warn("Skipping row without player identity", "table", spec.table)
			continue
		}

		args := []any{id, name, teamOrNil(row)}
		for _, f := range spec.fields {
			v := fixtureNum(row, f.key)
			if spec.fractional {
				args = append(args, v)
			} else {
				args = append(args, int64(math.Round(v)))
			}
		}
		args = append(args, fixtureNum(row, "TotalPoints"), fixtureRank(row))
		batch = append(batch, args)
	}

	columns := []string{"playerid", "playername", "team"}
	for _, f := range spec.fields {
		columns = append(columns, f.column)
	}
	columns = append(columns, "totalpoints", "rank")

	return upsertBatch(db, spec.table, columns, batch)
}

// loadKickers aggregates the per-range field goal splits into made/attempted
// pairs. The feed only breaks out misses up to 39 yards.
func loadKickers(db *sql.DB, rows []map[string]any) error {
	var batch [][]any
	for _, row := range rows {
		id := fixtureString(row, "PlayerId")
		name := fixtureString(row, "PlayerName")
		if id == "" || name == "" {
			log.Warn("Skipping row without player identity", "table", "k_stats")
			continue
		}

		fgMade := 0.0
		for _, rng := range []string{"0-19", "20-29", "30-39", "40-49", "50"} {
			fgMade += fixtureNum(row, "FgMade_"+rng)
		}
		fgMiss := 0.0
		for _, rng := range []string{"0-19", "20-29", "30-39"} {
			fgMiss += fixtureNum(row, "FgMiss_"+rng)
		}
		patMade := fixtureNum(row, "PatMade")
		patMissed := fixtureNum(row, "PatMissed")

		batch = append(batch, []any{
			id, name, teamOrNil(row),
			int64(fgMade), int64(fgMade + fgMiss),
			int64(patMade), int64(patMade + patMissed),
			fixtureNum(row, "TotalPoints"), fixtureRank(row),
		})
	}

	columns := []string{"playerid", "playername", "team", "fieldgoals", "fieldgoalattempts", "extrapoints", "extrapointattempts", "totalpoints", "rank"}
	return upsertBatch(db, "k_stats", columns, batch)
}

// upsertBatch inserts rows in batches, updating existing players in place so
// the loader can be re-run against a fresh season dump.
func upsertBatch(db *sql.DB, table string, columns []string, batch [][]any) error {
	if len(batch) == 0 {
		log.Info("No rows to load", "table", table)
		return nil
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	var updates []string
	for _, col := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]any, 0, batchSize*len(columns))

	for i, row := range batch {
		valueStrings = append(valueStrings, placeholder)
		valueArgs = append(valueArgs, row...)

		if (i+1)%batchSize == 0 || (i+1) == len(batch) {
			stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s ON CONFLICT(playerid) DO UPDATE SET %s;`,
				table, strings.Join(columns, ", "), strings.Join(valueStrings, ","), strings.Join(updates, ", "))

			if _, err := tx.Exec(stmt, valueArgs...); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to execute batch insert: %w", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]any, 0, batchSize*len(columns))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Info("Loaded rows", "table", table, "count", len(batch))
	return nil
}

// loadSynthetic fills every table with generated players, which is handy for
// exercising the API without a season dump.
func loadSynthetic(db *sql.DB, perPosition int) error {
	teams := []struct{ code, name, division string }{
		{"KC", "Kansas City Chiefs", "AFC West"},
		{"BUF", "Buffalo Bills", "AFC East"},
		{"SF", "San Francisco 49ers", "NFC West"},
		{"PHI", "Philadelphia Eagles", "NFC East"},
		{"DAL", "Dallas Cowboys", "NFC East"},
		{"BAL", "Baltimore Ravens", "AFC North"},
	}
	for _, tm := range teams {
		if _, err := db.Exec(`INSERT OR IGNORE INTO teams (team_code, team_name, division) VALUES (?, ?, ?)`,
			tm.code, tm.name, tm.division); err != nil {
			return err
		}
	}

	for _, pos := range schema.Positions() {
		ts := schema.MustLookup(pos)

		columns := []string{"playerid", "playername", "team"}
		for _, f := range ts.Fields {
			columns = append(columns, f.Column)
		}
		columns = append(columns, "totalpoints", "rank")

		var batch [][]any
		for i := 0; i < perPosition; i++ {
			args := []any{
				uuid.NewString(),
				fmt.Sprintf("Synthetic %s %d", pos, i+1),
				teams[rand.Intn(len(teams))].code,
			}
			for _, f := range ts.Fields {
				if f.Fractional {
					args = append(args, float64(rand.Intn(30))/2)
				} else {
					args = append(args, rand.Intn(1500))
				}
			}
			args = append(args, float64(rand.Intn(4000))/10, i+1)
			batch = append(batch, args)
		}

		if err := upsertBatch(db, ts.Table, columns, batch); err != nil {
			return err
		}
	}
	return nil
}

// Fixture values arrive loosely typed: numbers, numeric strings, or null.
func fixtureNum(row map[string]any, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func fixtureString(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// teamOrNil keeps free agents as NULL rather than an empty string.
func teamOrNil(row map[string]any) any {
	if team := fixtureString(row, "Team"); team != "" {
		return team
	}
	return nil
}

// fixtureRank defaults unranked players to 999 so they sort last.
func fixtureRank(row map[string]any) int64 {
	if r := int64(math.Round(fixtureNum(row, "Rank"))); r > 0 {
		return r
	}
	return 999
}
