// Package query builds parameterized SQL for the position stat tables. Each
// operation returns an intermediate Spec rather than raw SQL, so the storage
// layer decides when and how to execute it. Table names are only ever taken
// from the schema registry enumeration; every request-supplied value is a
// bound parameter, including inside fan-out unions.
package query

import (
	"fmt"
	"strings"

	"gridiron/internal/schema"
)

// ValidationError rejects a malformed request before any query executes.
type ValidationError struct {
	msg string
	err error
}

func (e *ValidationError) Error() string { return e.msg }
func (e *ValidationError) Unwrap() error { return e.err }

// Arm is one SELECT against a single position table.
type Arm struct {
	Schema schema.TableSchema
	Where  string
	Args   []any
}

// Spec is an ordered set of arms merged by UNION ALL and ordered by total
// points descending with rank as the tie-break. WithStats reports whether
// the projection carries the per-position stat columns (single-table and
// DEF queries) or only the shared identity subset (cross-position fan-outs).
type Spec struct {
	Arms      []Arm
	WithStats bool
}

const (
	whereTeam = "team = ?"
	whereName = `playername COLLATE NOCASE LIKE ? ESCAPE '\'`
)

// ByPosition selects every row of one position group's table, or the union
// of the three defensive tables for the synthetic DEF aggregate.
func ByPosition(tag string) (Spec, error) {
	if schema.IsAggregate(tag) {
		spec := Spec{WithStats: true}
		for _, pos := range schema.Defensive() {
			spec.Arms = append(spec.Arms, Arm{Schema: schema.MustLookup(pos)})
		}
		return spec, nil
	}

	s, err := schema.Lookup(tag)
	if err != nil {
		return Spec{}, &ValidationError{msg: err.Error(), err: err}
	}
	return Spec{Arms: []Arm{{Schema: s}}, WithStats: true}, nil
}

// ByTeam fans out across all eight position tables filtered by exact team
// code match.
func ByTeam(code string) (Spec, error) {
	if code == "" {
		return Spec{}, &ValidationError{msg: "team code is required"}
	}
	var spec Spec
	for _, pos := range schema.Positions() {
		spec.Arms = append(spec.Arms, Arm{
			Schema: schema.MustLookup(pos),
			Where:  whereTeam,
			Args:   []any{code},
		})
	}
	return spec, nil
}

// Search filters by case-insensitive substring match on player name. With a
// position tag it targets that one table; without one it fans out across all
// eight. The DEF aggregate is disallowed: name search operates on exactly
// one backing table or the full fan-out, never a partial union.
func Search(substr, tag string) (Spec, error) {
	if substr == "" {
		return Spec{}, &ValidationError{msg: "search term is required"}
	}
	pattern := "%" + escapeLike(substr) + "%"

	if tag == "" {
		var spec Spec
		for _, pos := range schema.Positions() {
			spec.Arms = append(spec.Arms, Arm{
				Schema: schema.MustLookup(pos),
				Where:  whereName,
				Args:   []any{pattern},
			})
		}
		return spec, nil
	}

	if schema.IsAggregate(tag) {
		return Spec{}, &ValidationError{msg: "name search cannot target the DEF aggregate: scope it to LB, DL or DB, or omit the position"}
	}

	s, err := schema.Lookup(tag)
	if err != nil {
		return Spec{}, &ValidationError{msg: err.Error(), err: err}
	}
	return Spec{
		Arms:      []Arm{{Schema: s, Where: whereName, Args: []any{pattern}}},
		WithStats: true,
	}, nil
}

// SQL renders the spec as a single parameterized statement plus its bound
// arguments in placeholder order.
func (s Spec) SQL() (string, []any) {
	selects := make([]string, 0, len(s.Arms))
	var args []any
	for _, arm := range s.Arms {
		selects = append(selects, armSQL(arm, s.WithStats))
		args = append(args, arm.Args...)
	}

	sql := strings.Join(selects, "\nUNION ALL\n")
	// SQLite only allows result columns as ORDER BY terms in a compound
	// SELECT, so the NULL-points coalescing lives in the projection.
	sql += "\nORDER BY totalpoints DESC, rank ASC"
	return sql, args
}

func armSQL(arm Arm, withStats bool) string {
	// Rows where the upstream points computation has not run yet sort as zero.
	pointsCol := fmt.Sprintf("COALESCE(%s, 0) AS %s", schema.ColTotalPoints, schema.ColTotalPoints)
	cols := []string{schema.ColName, schema.ColTeam, pointsCol, schema.ColRank}
	if withStats {
		for _, f := range arm.Schema.Fields {
			cols = append(cols, f.Column)
		}
	}
	// The position tag is carried per row so fan-out and DEF results keep
	// their source group through the union.
	cols = append(cols, fmt.Sprintf("'%s' AS position", arm.Schema.Position))

	sql := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), arm.Schema.Table)
	if arm.Where != "" {
		sql += " WHERE " + arm.Where
	}
	return sql
}

// escapeLike neutralizes LIKE metacharacters so a search term only ever
// matches itself as literal text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
