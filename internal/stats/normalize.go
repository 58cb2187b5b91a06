package stats

import (
	"fmt"
	"math"
	"strconv"

	"gridiron/internal/schema"
)

// Normalize converts loosely-typed rows into canonical player records,
// applying the registry's field renaming and numeric coercion. Row order is
// preserved; the query layer already ordered the result and this function
// must not re-sort. withStats mirrors the Spec that produced the rows.
func Normalize(rows []map[string]any, withStats bool) ([]Player, error) {
	players := make([]Player, 0, len(rows))
	for _, row := range rows {
		p, err := normalizeRow(row, withStats)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func normalizeRow(row map[string]any, withStats bool) (Player, error) {
	pos, err := rowPosition(row)
	if err != nil {
		return Player{}, err
	}
	sch := schema.MustLookup(pos)

	var p Player
	p.Position = string(pos)

	name, ok := row[schema.ColName]
	if !ok {
		return Player{}, &SchemaMismatchError{Table: sch.Table, Column: schema.ColName}
	}
	p.Name = toString(name)

	// A null team code stays null; an unrostered player is not on team "".
	team, ok := row[schema.ColTeam]
	if !ok {
		return Player{}, &SchemaMismatchError{Table: sch.Table, Column: schema.ColTeam}
	}
	if team != nil {
		code := toString(team)
		p.Team = &code
	}

	points, err := numericColumn(row, sch.Table, schema.ColTotalPoints)
	if err != nil {
		return Player{}, err
	}
	p.TotalPoints = points

	rank, err := numericColumn(row, sch.Table, schema.ColRank)
	if err != nil {
		return Player{}, err
	}
	p.Rank = int(rank)

	if !withStats {
		return p, nil
	}

	p.Stats = make(map[string]any, len(sch.Fields))
	for _, f := range sch.Fields {
		v, err := numericColumn(row, sch.Table, f.Column)
		if err != nil {
			return Player{}, err
		}
		if f.Fractional {
			p.Stats[f.Name] = v
		} else {
			p.Stats[f.Name] = int64(math.Round(v))
		}
	}
	return p, nil
}

func rowPosition(row map[string]any) (schema.Position, error) {
	v, ok := row["position"]
	if !ok {
		return "", &SchemaMismatchError{Table: "?", Column: "position"}
	}
	tag := toString(v)
	if _, err := schema.Lookup(tag); err != nil {
		return "", &SchemaMismatchError{Table: "?", Column: "position", Detail: fmt.Sprintf("unrecognized tag %q", tag)}
	}
	return schema.Position(tag), nil
}

// numericColumn coerces a column value, defaulting NULL to zero. A missing
// key (as opposed to a NULL value) is a registry/table drift.
func numericColumn(row map[string]any, table, column string) (float64, error) {
	v, ok := row[column]
	if !ok {
		return 0, &SchemaMismatchError{Table: table, Column: column}
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, &SchemaMismatchError{Table: table, Column: column, Detail: err.Error()}
	}
	return f, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case float64:
		return x, nil
	case []byte:
		return strconv.ParseFloat(string(x), 64)
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
