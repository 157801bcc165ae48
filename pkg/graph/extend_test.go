package graph

import (
	"reflect"
	"strings"
	"testing"
)

func mkClauses(parts ...string) (string, [][]Candidate) {
	clauses := make([][]Candidate, len(parts))
	for i, p := range parts {
		clauses[i] = []Candidate{NewCandidate(p, p, 0)}
	}
	return strings.Join(parts, ""), clauses
}

func toStrings(yomi string, ranges []Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = yomi[r.Start:r.End]
	}
	return out
}

func TestExtendRight(t *testing.T) {
	yomi, clauses := mkClauses("わ")
	got := toStrings(yomi, ExtendRight(clauses, 0))
	want := []string{"わ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendRight = %v, want %v", got, want)
	}
}

func TestExtendRight2(t *testing.T) {
	yomi, clauses := mkClauses("わ", "た")
	got := toStrings(yomi, ExtendRight(clauses, 0))
	want := []string{"わた"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendRight = %v, want %v", got, want)
	}
}

func TestExtendRight3(t *testing.T) {
	yomi, clauses := mkClauses("わ", "たし")
	got := toStrings(yomi, ExtendRight(clauses, 0))
	want := []string{"わた", "し"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendRight = %v, want %v", got, want)
	}
}

func TestExtendLeft(t *testing.T) {
	yomi, clauses := mkClauses("わ")
	got := toStrings(yomi, ExtendLeft(clauses, 0))
	want := []string{"わ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendLeft = %v, want %v", got, want)
	}
}

func TestExtendLeft2(t *testing.T) {
	yomi, clauses := mkClauses("わ", "た")
	got := toStrings(yomi, ExtendLeft(clauses, 0))
	want := []string{"わ", "た"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendLeft = %v, want %v", got, want)
	}
}

func TestExtendLeft3(t *testing.T) {
	yomi, clauses := mkClauses("わだ", "た", "そ")
	got := toStrings(yomi, ExtendLeft(clauses, 0))
	want := []string{"わ", "だた", "そ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendLeft = %v, want %v", got, want)
	}
}

func TestExtendLeft4(t *testing.T) {
	yomi, clauses := mkClauses("わだ", "た", "そ")
	got := toStrings(yomi, ExtendLeft(clauses, 1))
	want := []string{"わ", "だた", "そ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendLeft = %v, want %v", got, want)
	}
}

func TestExtendLeft5(t *testing.T) {
	yomi, clauses := mkClauses("およよよあ")
	got := toStrings(yomi, ExtendLeft(clauses, 0))
	want := []string{"およよよ", "あ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendLeft = %v, want %v", got, want)
	}
}

func TestExtendLeft6(t *testing.T) {
	yomi, clauses := mkClauses("や", "まと")
	got := toStrings(yomi, ExtendLeft(clauses, 1))
	want := []string{"やまと"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtendLeft = %v, want %v", got, want)
	}
}
