package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "name").From("players").
		Where(
			Eq("category", "bowler"),
			In("id", []any{"p1", "p2"}),
			IsNull("deleted_at"),
		).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE category = $1 AND id IN ($2, $3) AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, wantQuery)
	}
	if !reflect.DeepEqual(args, []any{"bowler", "p1", "p2"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("teams").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "SELECT id FROM teams WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestSelectBuilder_ExprRewritesPlaceholders(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("fantasy_teams").
		Where(
			Eq("user_id", "u1"),
			Expr("contest_id IS NOT DISTINCT FROM ?", "c1"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT id FROM fantasy_teams WHERE user_id = $1 AND contest_id IS NOT DISTINCT FROM $2"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"u1", "c1"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestInsertBuilder_SuffixAndMultiRow(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("player_performances").
		Columns("player_id", "contest_id", "points").
		Values("p1", "c1", 10).
		Values("p2", "c1", 4).
		Suffix("ON CONFLICT (player_id, contest_id) DO UPDATE SET points = EXCLUDED.points").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO player_performances (player_id, contest_id, points) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (player_id, contest_id) DO UPDATE SET points = EXCLUDED.points"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(args))
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("players").
		Set("points", 12).
		Set("runs", 44).
		Where(Eq("id", "p1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE players SET points = $1, runs = $2 WHERE id = $3 AND deleted_at IS NULL"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{12, 44, "p1"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	row := struct {
		ID     string `db:"id"`
		Name   string `db:"name"`
		Ignore string `db:"-"`
	}{ID: "t1", Name: "Chennai Chargers", Ignore: "x"}

	query, args, err := InsertModel("fantasy_teams", row, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "INSERT INTO fantasy_teams (id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if !reflect.DeepEqual(args, []any{"t1", "Chennai Chargers"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}
