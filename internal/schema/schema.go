// Package schema holds the static table metadata for each position group:
// which table backs it, which raw columns make up its canonical record, and
// how raw column names map to canonical API field names. Every other layer
// dispatches through this registry instead of branching on position.
package schema

import (
	"fmt"
	"strings"
)

// Position identifies one of the fixed position groups.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
	K  Position = "K"
	LB Position = "LB"
	DL Position = "DL"
	DB Position = "DB"

	// DEF is not a backing table. It instructs the query layer to union the
	// three defensive tables (LB, DL, DB).
	DEF Position = "DEF"
)

// Identity and ordering columns shared by every stat table.
const (
	ColName        = "playername"
	ColTeam        = "team"
	ColTotalPoints = "totalpoints"
	ColRank        = "rank"
)

// Field maps one raw stat column to its canonical API field name.
// Fractional fields keep their precision (sacks are recorded in halves);
// all other stat fields are counting stats coerced to whole numbers.
type Field struct {
	Column     string
	Name       string
	Fractional bool
}

// TableSchema describes one position group's backing table and field map.
type TableSchema struct {
	Position Position
	Table    string
	Fields   []Field
}

// Columns returns the ordered raw column list a full projection of this
// table needs: the shared identity columns followed by the stat columns.
func (s TableSchema) Columns() []string {
	cols := []string{ColName, ColTeam, ColTotalPoints, ColRank}
	for _, f := range s.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// UnknownPositionError is returned when a tag is not one of the eight
// recognized position groups.
type UnknownPositionError struct {
	Tag string
}

func (e *UnknownPositionError) Error() string {
	return fmt.Sprintf("unknown position %q: valid positions are %s", e.Tag, strings.Join(tagStrings(), ", "))
}

// LB, DL and DB share an identical column shape.
var defensiveFields = []Field{
	{Column: "tackles", Name: "tackles"},
	{Column: "tackles_ast", Name: "assisted_tackles"},
	{Column: "sacks", Name: "sacks", Fractional: true},
	{Column: "tackles_tfl", Name: "tackles_for_loss"},
	{Column: "interceptions", Name: "interceptions"},
	{Column: "forced_fumbles", Name: "forced_fumbles"},
	{Column: "fumble_recoveries", Name: "fumble_recoveries"},
	{Column: "passes_defended", Name: "passes_defended"},
	{Column: "qb_hits", Name: "qb_hits"},
}

// WR and TE share an identical column shape.
var receiverFields = []Field{
	{Column: "receptions", Name: "receptions"},
	{Column: "targets", Name: "targets"},
	{Column: "receivingyards", Name: "receiving_yards"},
	{Column: "receivingtds", Name: "receiving_tds"},
}

var registry = map[Position]TableSchema{
	QB: {Position: QB, Table: "qb_stats", Fields: []Field{
		{Column: "passingyards", Name: "passing_yards"},
		{Column: "passingtds", Name: "passing_tds"},
		{Column: "interceptions", Name: "interceptions"},
		{Column: "rushingyards", Name: "rushing_yards"},
		{Column: "rushingtds", Name: "rushing_tds"},
	}},
	RB: {Position: RB, Table: "rb_stats", Fields: []Field{
		{Column: "rushingyards", Name: "rushing_yards"},
		{Column: "rushingtds", Name: "rushing_tds"},
		{Column: "receptions", Name: "receptions"},
		{Column: "receivingyards", Name: "receiving_yards"},
		{Column: "receivingtds", Name: "receiving_tds"},
	}},
	WR: {Position: WR, Table: "wr_stats", Fields: receiverFields},
	TE: {Position: TE, Table: "te_stats", Fields: receiverFields},
	K: {Position: K, Table: "k_stats", Fields: []Field{
		{Column: "fieldgoals", Name: "field_goals"},
		{Column: "fieldgoalattempts", Name: "field_goal_attempts"},
		{Column: "extrapoints", Name: "extra_points"},
		{Column: "extrapointattempts", Name: "extra_point_attempts"},
	}},
	LB: {Position: LB, Table: "lb_stats", Fields: defensiveFields},
	DL: {Position: DL, Table: "dl_stats", Fields: defensiveFields},
	DB: {Position: DB, Table: "db_stats", Fields: defensiveFields},
}

// order fixes the iteration order for fan-out queries.
var order = []Position{QB, RB, WR, TE, K, LB, DL, DB}

func tagStrings() []string {
	tags := make([]string, len(order))
	for i, p := range order {
		tags[i] = string(p)
	}
	return tags
}

// Positions returns the eight position groups in their fixed fan-out order.
func Positions() []Position {
	out := make([]Position, len(order))
	copy(out, order)
	return out
}

// Defensive returns the three position groups the DEF aggregate unions.
func Defensive() []Position {
	return []Position{LB, DL, DB}
}

// Normalize upper-cases a request-supplied tag. It does not validate it.
func Normalize(tag string) Position {
	return Position(strings.ToUpper(strings.TrimSpace(tag)))
}

// Lookup resolves a position tag (case-insensitive) to its table schema.
// The synthetic DEF tag is not a backing table and fails here; callers that
// accept it must check IsAggregate first.
func Lookup(tag string) (TableSchema, error) {
	s, ok := registry[Normalize(tag)]
	if !ok {
		return TableSchema{}, &UnknownPositionError{Tag: tag}
	}
	return s, nil
}

// MustLookup resolves a position already known to come from the registry
// enumeration. Reaching the panic means the registry and a produced row
// have drifted, which is a programming error.
func MustLookup(p Position) TableSchema {
	s, ok := registry[p]
	if !ok {
		panic(fmt.Sprintf("schema: position %q is not in the registry", p))
	}
	return s
}

// IsAggregate reports whether the tag is the synthetic DEF aggregate.
func IsAggregate(tag string) bool {
	return Normalize(tag) == DEF
}
