package query_test

import (
	"slices"
	"testing"

	"github.com/registrar-tools/tally/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "records", "r").
		Project("id", "ID").
		Project("summary", "Summary").
		Map("collection", "Collection")
}

func TestBuildWithConditions(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection(), query.SortField{Field: "ID"}).
		WhereEquals("Collection", "maps").
		WherePredicate("r.value_class = 'rare'").
		Build()

	want := "SELECT r.id, r.summary FROM public.records r WHERE r.collection = $1 AND (r.value_class = 'rare') ORDER BY r.id ASC"
	if sql != want {
		t.Errorf("sql = %q\nwant %q", sql, want)
	}
	if !slices.Equal(args, []any{any("maps")}) {
		t.Errorf("args = %v, want [maps]", args)
	}
}

func TestBuildSkipsBlankPredicate(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WherePredicate("   ").
		Build()

	want := "SELECT r.id, r.summary FROM public.records r"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestWhereInInt64Literal(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereInInt64("ID", []int64{3, 1, 7}).
		Build()

	want := "SELECT r.id, r.summary FROM public.records r WHERE r.id IN (3, 1, 7)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("identifier sets should render inline; args = %v", args)
	}
}

func TestBuildCount(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("Collection", "maps").
		BuildCount()

	want := "SELECT COUNT(*) FROM public.records r WHERE r.collection = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args = %v, want one", args)
	}
}

func TestBuildGroupCount(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "records", "r").
		Map("collection", "Collection").
		Map("code_prefix", "CodePrefix").
		Map("code_number", "CodeNumber")

	sql, args := query.
		NewBuilder(projection).
		WhereEquals("Collection", "maps").
		BuildGroupCount([]string{"CodePrefix", "CodeNumber"}, 2)

	want := "SELECT r.code_prefix, r.code_number, COUNT(*) FROM public.records r" +
		" WHERE r.collection = $1" +
		" GROUP BY r.code_prefix, r.code_number" +
		" HAVING COUNT(*) >= $2" +
		" ORDER BY COUNT(*) DESC, r.code_prefix, r.code_number"
	if sql != want {
		t.Errorf("sql = %q\nwant %q", sql, want)
	}
	if !slices.Equal(args, []any{any("maps"), any(2)}) {
		t.Errorf("args = %v, want [maps 2]", args)
	}
}

func TestJoinInt64(t *testing.T) {
	if got := query.JoinInt64([]int64{9, 4, 200}, "|"); got != "9|4|200" {
		t.Errorf("JoinInt64 = %q, want %q", got, "9|4|200")
	}
	if got := query.JoinInt64(nil, "|"); got != "" {
		t.Errorf("JoinInt64(nil) = %q, want empty", got)
	}
}
