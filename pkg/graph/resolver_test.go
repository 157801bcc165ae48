package graph

import (
	"strings"
	"testing"

	"github.com/akaza-im/akaza-go/pkg/kanatrie"
)

type fakeUserCoster struct {
	unigram map[string]float32
	bigram  map[string]float32
}

func (f *fakeUserCoster) GetUnigramCost(key string) (float32, bool) {
	c, ok := f.unigram[key]
	return c, ok
}

func (f *fakeUserCoster) GetBigramCost(prevKey, key string) (float32, bool) {
	c, ok := f.bigram[prevKey+"\t"+key]
	return c, ok
}

func TestGraphResolverAsciiPassthrough(t *testing.T) {
	trie := kanatrie.Build([]string{"abc", "ab", "c"})
	seg := NewSegmenter(asSearchers(trie)).Build("abc", nil)

	uni, bi := buildTestLMs(t)
	b := NewGraphBuilder(map[string][]string{}, map[string][]string{}, nil, uni, bi)
	lattice := b.Construct("abc", seg)

	got, err := (GraphResolver{}).Resolve(lattice)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var sb strings.Builder
	for _, clause := range got {
		sb.WriteString(clause[0].Surface)
	}
	if sb.String() != "abc" {
		t.Errorf("resolved = %q, want %q", sb.String(), "abc")
	}
}

func TestGraphResolverKanaKanjiUserPreference(t *testing.T) {
	trie := kanatrie.Build([]string{"わたし", "わた", "し"})
	seg := NewSegmenter(asSearchers(trie)).Build("わたし", nil)

	uni, bi := buildTestLMs(t)
	userData := &fakeUserCoster{unigram: map[string]float32{"私/わたし": 0.001}}
	b := NewGraphBuilder(
		map[string][]string{"わたし": {"私", "渡し"}},
		map[string][]string{},
		userData, uni, bi,
	)
	lattice := b.Construct("わたし", seg)

	got, err := (GraphResolver{}).Resolve(lattice)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var sb strings.Builder
	for _, clause := range got {
		sb.WriteString(clause[0].Surface)
	}
	if sb.String() != "私" {
		t.Errorf("resolved = %q, want %q", sb.String(), "私")
	}
}
