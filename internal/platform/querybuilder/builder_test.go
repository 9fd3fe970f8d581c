package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("races").
		Where(Eq("year", 2026), IsNull("deleted_at"), Expr("pcs_path IS NOT NULL")).
		OrderBy("start_timestamp", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM races WHERE year = $1 AND deleted_at IS NULL AND pcs_path IS NOT NULL ORDER BY start_timestamp, id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != 2026 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InAndExprArgs(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := Select("*").
		From("races").
		Where(In("status", []any{"planned", "finished"}), Expr("start_timestamp >= ?", since)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM races WHERE status IN ($1, $2) AND start_timestamp >= $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != since {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInNeverMatches(t *testing.T) {
	query, args, err := Select("id").From("cyclists").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM cyclists WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("race_cyclists").
		Columns("race_id", "cyclist_id").
		Values(int64(7), int64(42)).
		Suffix("ON CONFLICT (race_id, cyclist_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO race_cyclists (race_id, cyclist_id) VALUES ($1, $2) ON CONFLICT (race_id, cyclist_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != int64(42) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("code", "name").Values("UAD").ToSQL()
	if err == nil {
		t.Fatalf("expected error for mismatched row width")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("races").
		Set("status", "canceled").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(3))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE races SET status = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "canceled" || args[1] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("race_results").
		Where(Eq("race_id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM race_results WHERE race_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := DeleteFrom("race_cyclists").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped delete")
	}
}

func TestInsertModel(t *testing.T) {
	type teamRow struct {
		Code     string `db:"code"`
		Name     string `db:"name"`
		ImageURL string `db:"image_url"`
		internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModel("teams", teamRow{Code: "UAD", Name: "UAE Team Emirates", ImageURL: "u"}, "ON CONFLICT (code) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO teams (code, name, image_url) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "UAD" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestQuoteLiteral(t *testing.T) {
	got := quoteLiteral("l'alpe")
	if got != "'l''alpe'" {
		t.Fatalf("unexpected quoted literal: %s", got)
	}
}
