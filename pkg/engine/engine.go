// Package engine wires the romaji converter, dictionaries, language models,
// and graph search into the single conversion API a keyboard input method
// actually calls: romaji keystrokes in, ranked kanji candidates out, plus
// the online-learning feedback loop that records what the caller accepted.
package engine

import (
	"fmt"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/akaza-im/akaza-go/pkg/config"
	"github.com/akaza-im/akaza-go/pkg/graph"
	"github.com/akaza-im/akaza-go/pkg/kanatrie"
	"github.com/akaza-im/akaza-go/pkg/lm"
	"github.com/akaza-im/akaza-go/pkg/romaji"
	"github.com/akaza-im/akaza-go/pkg/skk"
	"github.com/akaza-im/akaza-go/pkg/userdata"
)

// Engine is the top-level conversion facade: it owns every loaded resource
// (dictionaries, language models, user data) and exposes the three
// operations a caller needs - romaji-to-kana, kana-to-kanji conversion, and
// recording which candidate the caller accepted.
type Engine struct {
	cfg *config.Config

	romajiConv *romaji.Converter

	unigramLM *lm.SystemUnigramLM
	bigramLM  *lm.SystemBigramLM
	userData  *userdata.UserData

	segmenter *graph.Segmenter
	builder   *graph.GraphBuilder
	resolver  latticeResolver
}

// latticeResolver is the subset of graph.GraphResolver Convert calls,
// narrowed to an interface so a test can substitute a resolver that fails
// on demand and exercise Convert's degrade-to-passthrough path.
type latticeResolver interface {
	Resolve(lattice *graph.LatticeGraph) ([][]graph.Candidate, error)
}

// Resources bundles the pieces New needs that aren't themselves described
// by cfg: the system language models, built offline by
// `akaza -build-dict`, and the user data store the caller manages the
// lifetime of (so it can be shared with a PersistTask).
type Resources struct {
	UnigramLM *lm.SystemUnigramLM
	BigramLM  *lm.SystemBigramLM
	UserData  *userdata.UserData
}

// New builds an Engine from cfg: it loads the romaji mapping cfg.Romkan
// names, reads and merges every configured dictionary file by usage, and
// seeds the segmenter's system kana trie from the merged dictionary's
// readings.
func New(cfg *config.Config, res Resources) (*Engine, error) {
	romajiConv, err := loadRomaji(cfg.Romkan)
	if err != nil {
		return nil, fmt.Errorf("engine: load romaji mapping %q: %w", cfg.Romkan, err)
	}

	kanaKanjiDict, singleTermDict, err := LoadDicts(cfg.Dicts)
	if err != nil {
		return nil, err
	}

	systemKanaTrie := kanatrie.New()
	for yomi := range kanaKanjiDict {
		systemKanaTrie.Update(yomi)
	}
	for yomi := range singleTermDict {
		systemKanaTrie.Update(yomi)
	}

	userData := res.UserData
	if userData == nil {
		userData = userdata.New()
	}

	segmenter := graph.NewSegmenter([]graph.PrefixSearcher{systemKanaTrie, userData})
	builder := graph.NewGraphBuilder(kanaKanjiDict, singleTermDict, userData, res.UnigramLM, res.BigramLM)

	return &Engine{
		cfg:        cfg,
		romajiConv: romajiConv,
		unigramLM:  res.UnigramLM,
		bigramLM:   res.BigramLM,
		userData:   userData,
		segmenter:  segmenter,
		builder:    builder,
		resolver:   graph.GraphResolver{},
	}, nil
}

func loadRomaji(name string) (*romaji.Converter, error) {
	if name == "" || name == "default" {
		return romaji.Default(), nil
	}
	return romaji.NewFromFile(name)
}

// LoadDicts reads every configured dictionary file, expands okuri-ari
// entries, and merges the results into the kana-kanji and single-term
// dictionaries the graph builder consults. Dictionaries configured as
// Disabled are skipped; merge order follows cfg.Dicts, so a later entry's
// surfaces win on a yomi collision within the same usage bucket.
//
// Exported so cmd/akaza's `-build-dict` mode can reuse the exact same
// merge rules when it bakes a config's dictionaries into a persisted
// system store.
func LoadDicts(dicts []config.DictConfig) (kanaKanji, singleTerm map[string][]string, err error) {
	kanaKanji = map[string][]string{}
	singleTerm = map[string][]string{}
	expander := skk.DefaultExpander()

	for _, d := range dicts {
		if d.Usage == config.UsageDisabled {
			continue
		}

		enc := skk.UTF8
		if d.Encoding == config.EncodingEUCJP {
			enc = skk.EUCJP
		}

		src, warning, err := skk.ReadFile(d.Path, enc)
		if err != nil {
			return nil, nil, fmt.Errorf("engine: load dictionary %s: %w", d.Path, err)
		}
		if warning != "" {
			fmt.Println("engine:", warning)
		}

		entries, err := skk.Parse(src, expander)
		if err != nil {
			return nil, nil, fmt.Errorf("engine: parse dictionary %s: %w", d.Path, err)
		}

		target := kanaKanji
		if d.Usage == config.UsageSingleTerm {
			target = singleTerm
		}
		for yomi, surfaces := range entries {
			target[yomi] = surfaces
		}
	}

	return kanaKanji, singleTerm, nil
}

// ToHiragana converts romaji keystrokes to hiragana, the first step of
// composing an input before it's handed to Convert.
func (e *Engine) ToHiragana(src string) string {
	return e.romajiConv.ToHiragana(src)
}

// RemoveLastChar strips the final romaji unit typed, for backspace during
// composition.
func (e *Engine) RemoveLastChar(src string) string {
	return e.romajiConv.RemoveLastChar(src)
}

// Convert runs the full composition pipeline: romaji-to-hiragana, bunsetsu
// segmentation, lattice construction, and Viterbi resolution, honoring any
// forceRanges the caller pinned (e.g. via a shift+arrow clause-boundary
// adjustment). It returns one slice of candidates per clause, winner
// first.
//
// Two inputs skip the pipeline entirely and pass through verbatim as a
// single candidate: an acronym (input starts with an uppercase ASCII
// letter, and no forceRanges are given) and a URL (input starts with
// http:// or https://) - typing either is never something a kana-kanji
// dictionary should try to convert.
//
// Convert never returns an error of its own: a keyboard input method has
// no good way to surface a conversion failure mid-keystroke, so a lattice
// that fails to resolve (a dictionary gap leaves no path from BOS to EOS,
// say) degrades to the same verbatim pass-through the acronym/URL
// shortcuts use, rather than losing the caller's input.
func (e *Engine) Convert(input string, forceRanges []graph.Range) ([][]graph.Candidate, error) {
	if input == "" {
		return nil, nil
	}
	if passthrough, ok := e.passthrough(input, forceRanges); ok {
		return passthrough, nil
	}

	yomi := e.ToHiragana(input)
	segmented := e.segmenter.Build(yomi, forceRanges)
	lattice := e.builder.Construct(yomi, segmented)
	clauses, err := e.resolver.Resolve(lattice)
	if err != nil {
		log.Printf("engine: resolve %q failed, passing through verbatim: %v", yomi, err)
		return verbatim(yomi), nil
	}
	return clauses, nil
}

func (e *Engine) passthrough(input string, forceRanges []graph.Range) ([][]graph.Candidate, bool) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return verbatim(input), true
	}
	if len(forceRanges) == 0 {
		if r, size := utf8.DecodeRuneInString(input); size > 0 && r < utf8.RuneSelf && unicode.IsUpper(r) {
			return verbatim(input), true
		}
	}
	return nil, false
}

func verbatim(s string) [][]graph.Candidate {
	return [][]graph.Candidate{{graph.NewCandidate(s, s, 0)}}
}

// ExtendClauseRight grows the clause at currentClause to absorb (part of)
// the next clause, returning the resulting forced ranges for the next
// Convert call.
func (e *Engine) ExtendClauseRight(clauses [][]graph.Candidate, currentClause int) []graph.Range {
	return graph.ExtendRight(clauses, currentClause)
}

// ExtendClauseLeft grows the clause at currentClause one character to the
// left, taking the last character of the previous clause; for the first
// clause it instead gives that clause's last character to the next one.
func (e *Engine) ExtendClauseLeft(clauses [][]graph.Candidate, currentClause int) []graph.Range {
	return graph.ExtendLeft(clauses, currentClause)
}

// Learn records the candidates the caller accepted (one per clause, in
// clause order) into the online-learned user statistics, so future
// conversions of the same readings prefer them.
func (e *Engine) Learn(candidates []graph.Candidate) {
	e.userData.RecordEntries(candidates)
}

// FlushUserData writes any pending learned statistics to disk immediately,
// independent of a background PersistTask's schedule.
func (e *Engine) FlushUserData() error {
	return e.userData.Flush()
}

// UserData exposes the underlying store, e.g. so a caller can wrap it in a
// userdata.PersistTask.
func (e *Engine) UserData() *userdata.UserData {
	return e.userData
}
