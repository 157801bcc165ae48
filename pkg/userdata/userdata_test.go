package userdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akaza-im/akaza-go/pkg/graph"
)

func candidatesFor(surface, yomi string) []graph.Candidate {
	return []graph.Candidate{graph.NewCandidate(yomi, surface, 0)}
}

func TestUserDataRecordEntriesAndCosts(t *testing.T) {
	u := New()

	if _, ok := u.GetUnigramCost("私/わたし"); ok {
		t.Fatalf("GetUnigramCost should miss before recording")
	}

	u.RecordEntries(candidatesFor("私", "わたし"))

	cost, ok := u.GetUnigramCost("私/わたし")
	if !ok {
		t.Fatalf("GetUnigramCost should hit after recording")
	}
	if cost <= 0 {
		t.Errorf("cost = %v, want positive", cost)
	}

	if got := u.CommonPrefixSearch("わたしの"); len(got) != 1 || got[0] != "わたし" {
		t.Errorf("CommonPrefixSearch = %v, want [わたし]", got)
	}
}

func TestUserDataFlushAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	unigramPath := filepath.Join(dir, "unigram.txt")
	bigramPath := filepath.Join(dir, "bigram.txt")

	u := Load(unigramPath, bigramPath)
	u.RecordEntries([]graph.Candidate{
		graph.NewCandidate("わたし", "私", 0),
		graph.NewCandidate("は", "は", 0),
	})
	if err := u.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if _, err := os.Stat(unigramPath); err != nil {
		t.Fatalf("unigram file not written: %v", err)
	}

	reloaded := Load(unigramPath, bigramPath)
	cost, ok := reloaded.GetUnigramCost("私/わたし")
	if !ok {
		t.Fatalf("reloaded stats should contain 私/わたし")
	}
	if cost <= 0 {
		t.Errorf("cost = %v, want positive", cost)
	}
	if _, ok := reloaded.GetBigramCost("私/わたし", "は/は"); !ok {
		t.Errorf("reloaded bigram stats should contain 私/わたし -> は/は")
	}
}

func TestUserDataFlushNoopWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	u := Load(filepath.Join(dir, "unigram.txt"), filepath.Join(dir, "bigram.txt"))
	if err := u.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "unigram.txt")); err == nil {
		t.Errorf("Flush should not create a file when nothing changed")
	}
}
