package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/akaza-im/akaza-go/pkg/config"
	"github.com/akaza-im/akaza-go/pkg/graph"
	"github.com/akaza-im/akaza-go/pkg/lm"
	"github.com/akaza-im/akaza-go/pkg/trie"
	"github.com/akaza-im/akaza-go/pkg/userdata"
)

func writeTestDict(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "SKK-JISYO.test")
	body := ";; okuri-nasi entries.\n" +
		"わたし /私/渡し/\n" +
		"は /は/\n"
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func testLMs(t *testing.T) (*lm.SystemUnigramLM, *lm.SystemBigramLM) {
	t.Helper()
	uni, err := lm.BuildUnigramLM(trie.MemBuilder{}, map[string]float32{}, 20, 19)
	if err != nil {
		t.Fatalf("BuildUnigramLM: %v", err)
	}
	bi, err := lm.BuildBigramLM(trie.MemBuilder{}, map[[2]int]float32{}, 20)
	if err != nil {
		t.Fatalf("BuildBigramLM: %v", err)
	}
	return uni, bi
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Dicts = []config.DictConfig{
		{Path: writeTestDict(t), Encoding: config.EncodingUTF8, DictType: config.DictTypeSKK, Usage: config.UsageNormal},
	}
	uni, bi := testLMs(t)
	e, err := New(cfg, Resources{UnigramLM: uni, BigramLM: bi})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestEngineToHiragana(t *testing.T) {
	e := newTestEngine(t)
	if got := e.ToHiragana("watasi"); got != "わたし" {
		t.Errorf("ToHiragana(watasi) = %q, want わたし", got)
	}
}

func TestEngineConvertPicksDictionarySurface(t *testing.T) {
	e := newTestEngine(t)
	clauses, err := e.Convert("わたしは", nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(clauses) == 0 {
		t.Fatalf("Convert returned no clauses")
	}

	found := false
	for _, clause := range clauses {
		for _, cand := range clause {
			if cand.Surface == "私" || cand.Surface == "渡し" {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("Convert(わたしは) = %v, want a dictionary surface among the candidates", clauses)
	}
}

func TestEngineConvertAcronymPassthrough(t *testing.T) {
	e := newTestEngine(t)
	clauses, err := e.Convert("WATASHI", nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := [][]graph.Candidate{{graph.NewCandidate("WATASHI", "WATASHI", 0)}}
	if len(clauses) != 1 || len(clauses[0]) != 1 || clauses[0][0].Surface != want[0][0].Surface {
		t.Errorf("Convert(WATASHI) = %v, want verbatim passthrough", clauses)
	}
}

func TestEngineConvertAcronymRespectsForceRanges(t *testing.T) {
	e := newTestEngine(t)
	// With forceRanges pinned, an uppercase-leading input still runs the
	// normal pipeline rather than short-circuiting on the acronym check.
	if _, err := e.Convert("Watasi", []graph.Range{{Start: 0, End: 6}}); err != nil {
		t.Fatalf("Convert: %v", err)
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(*graph.LatticeGraph) ([][]graph.Candidate, error) {
	return nil, fmt.Errorf("graph: no path reaches EOS")
}

func TestEngineConvertDegradesOnResolveError(t *testing.T) {
	e := newTestEngine(t)
	e.resolver = failingResolver{}

	clauses, err := e.Convert("わたし", nil)
	if err != nil {
		t.Fatalf("Convert should swallow a resolver error, got: %v", err)
	}
	if len(clauses) != 1 || len(clauses[0]) != 1 || clauses[0][0].Surface != "わたし" {
		t.Errorf("Convert on resolve failure = %v, want a single verbatim わたし candidate", clauses)
	}
}

func TestEngineConvertURLPassthrough(t *testing.T) {
	e := newTestEngine(t)
	for _, url := range []string{"http://example.com", "https://example.com/path?q=1"} {
		clauses, err := e.Convert(url, nil)
		if err != nil {
			t.Fatalf("Convert(%q): %v", url, err)
		}
		if len(clauses) != 1 || len(clauses[0]) != 1 || clauses[0][0].Surface != url {
			t.Errorf("Convert(%q) = %v, want verbatim passthrough", url, clauses)
		}
	}
}

func TestEngineLearnBiasesFutureConversions(t *testing.T) {
	e := newTestEngine(t)

	before, err := e.Convert("わたし", nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(before) != 1 || len(before[0]) == 0 {
		t.Fatalf("Convert returned %v, want one clause with candidates", before)
	}

	loser := before[0][len(before[0])-1]
	e.Learn([]graph.Candidate{graph.NewCandidate(loser.Yomi, loser.Surface, 0)})

	after, err := e.Convert("わたし", nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if after[0][0].Surface != loser.Surface {
		t.Errorf("after Learn, winner = %q, want learned surface %q", after[0][0].Surface, loser.Surface)
	}
}

func TestEngineFlushUserDataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ud := userdata.Load(filepath.Join(dir, "unigram.txt"), filepath.Join(dir, "bigram.txt"))

	cfg := config.Default()
	cfg.Dicts = []config.DictConfig{
		{Path: writeTestDict(t), Encoding: config.EncodingUTF8, DictType: config.DictTypeSKK, Usage: config.UsageNormal},
	}
	uni, bi := testLMs(t)
	e, err := New(cfg, Resources{UnigramLM: uni, BigramLM: bi, UserData: ud})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	clauses, err := e.Convert("わたし", nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	e.Learn([]graph.Candidate{graph.NewCandidate(clauses[0][0].Yomi, clauses[0][0].Surface, 0)})

	if err := e.FlushUserData(); err != nil {
		t.Fatalf("FlushUserData: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "unigram.txt")); err != nil {
		t.Errorf("FlushUserData should have written unigram stats: %v", err)
	}
}
