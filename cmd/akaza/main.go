// Command akaza is the kana-to-kanji conversion CLI: convert a single
// reading (or one reading per line of stdin), recording the accepted
// candidate for online learning, or build SQLite-backed dictionary and
// language-model stores from the configured dictionaries.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/akaza-im/akaza-go/pkg/config"
	"github.com/akaza-im/akaza-go/pkg/dict"
	"github.com/akaza-im/akaza-go/pkg/engine"
	"github.com/akaza-im/akaza-go/pkg/graph"
	"github.com/akaza-im/akaza-go/pkg/lm"
	"github.com/akaza-im/akaza-go/pkg/trie"
	"github.com/akaza-im/akaza-go/pkg/userdata"
)

func main() {
	configFlag := flag.String("config", "", "Path to config.yml (defaults to the standard XDG location)")
	yomiFlag := flag.String("yomi", "", "Reading to convert (hiragana); romaji is accepted and converted first")
	learnFlag := flag.Bool("learn", false, "Record the top candidate of each clause into user statistics after converting")
	buildDictFlag := flag.String("build-dict", "", "Build the system dictionary/language-model stores for config's dictionaries into this directory, then exit")
	unigramDBFlag := flag.String("unigram-db", "", "Path to a prebuilt unigram model store (from -build-dict); empty uses uniform default costs")
	bigramDBFlag := flag.String("bigram-db", "", "Path to a prebuilt bigram model store (from -build-dict); empty uses uniform default costs")
	flushIntervalFlag := flag.Duration("flush-interval", 30*time.Second, "How often to flush learned user statistics to disk")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *buildDictFlag != "" {
		if err := buildDict(cfg, *buildDictFlag); err != nil {
			log.Fatalf("Failed to build dictionary: %v", err)
		}
		return
	}

	uni, bi, err := loadModels(*unigramDBFlag, *bigramDBFlag)
	if err != nil {
		log.Fatalf("Failed to load language models: %v", err)
	}

	userData, err := userdata.LoadFromDefaultPath()
	if err != nil {
		log.Fatalf("Failed to load user data: %v", err)
	}
	persist := userdata.StartPersistTask(userData, *flushIntervalFlag)
	defer func() {
		if err := persist.Stop(); err != nil {
			log.Printf("Failed to flush user data on exit: %v", err)
		}
	}()

	e, err := engine.New(cfg, engine.Resources{UnigramLM: uni, BigramLM: bi, UserData: userData})
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	if *yomiFlag != "" {
		convertOne(e, *yomiFlag, *learnFlag)
		return
	}

	runInteractive(ctx, e, *learnFlag)
}

// convertOne converts a single reading and prints its candidates.
func convertOne(e *engine.Engine, input string, learn bool) {
	clauses, err := e.Convert(input, nil)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
	printClauses(clauses)
	if learn {
		learnTop(e, clauses)
	}
}

// runInteractive converts one reading per line of stdin until EOF or a
// shutdown signal, the same session shape an input method's conversion
// core runs under for the lifetime of a keyboard session.
func runInteractive(ctx context.Context, e *engine.Engine, learn bool) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("Shutting down, flushing user data...")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if line == "" {
				continue
			}
			clauses, err := e.Convert(line, nil)
			if err != nil {
				log.Printf("Conversion failed for %q: %v", line, err)
				continue
			}
			printClauses(clauses)
			if learn {
				learnTop(e, clauses)
			}
		}
	}
}

func learnTop(e *engine.Engine, clauses [][]graph.Candidate) {
	accepted := make([]graph.Candidate, len(clauses))
	for i, clause := range clauses {
		accepted[i] = clause[0]
	}
	e.Learn(accepted)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

func loadModels(unigramPath, bigramPath string) (*lm.SystemUnigramLM, *lm.SystemBigramLM, error) {
	var uni *lm.SystemUnigramLM
	var err error
	if unigramPath != "" {
		store, openErr := trie.OpenSQLiteStore(unigramPath)
		if openErr != nil {
			return nil, nil, fmt.Errorf("open unigram store %s: %w", unigramPath, openErr)
		}
		uni, err = lm.LoadUnigramLM(store)
	} else {
		uni, err = lm.BuildUnigramLM(trie.MemBuilder{}, map[string]float32{}, graph.DefaultScore, graph.DefaultScore)
	}
	if err != nil {
		return nil, nil, err
	}

	var bi *lm.SystemBigramLM
	if bigramPath != "" {
		store, openErr := trie.OpenSQLiteStore(bigramPath)
		if openErr != nil {
			return nil, nil, fmt.Errorf("open bigram store %s: %w", bigramPath, openErr)
		}
		bi, err = lm.LoadBigramLM(store)
	} else {
		bi, err = lm.BuildBigramLM(trie.MemBuilder{}, map[[2]int]float32{}, graph.DefaultScore)
	}
	if err != nil {
		return nil, nil, err
	}

	return uni, bi, nil
}

func printClauses(clauses [][]graph.Candidate) {
	now := time.Now()
	for i, clause := range clauses {
		surfaces := make([]string, len(clause))
		for j, c := range clause {
			surfaces[j] = c.SurfaceWithDynamic(now)
		}
		fmt.Printf("clause %d: %s\n", i+1, strings.Join(surfaces, " / "))
	}
}

// buildDict bakes cfg's dictionaries into SQLite stores: a kana-kanji
// dictionary, a single-term dictionary, and a unigram language model
// assigning every surface a stable word id. The unigram and bigram stores
// can be loaded with -unigram-db/-bigram-db; the two dictionary stores are
// not read by engine.New, which loads dictionaries from the configured SKK
// files. No
// training corpus ships with this tool, so every unigram entry gets the
// system default cost rather than a real frequency-derived score; the
// bigram model is built empty. Both stay ready for a future pass that
// folds in actual corpus statistics, the stable word ids intact.
func buildDict(cfg *config.Config, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	fmt.Printf("Loading %d dictionar(ies)...\n", len(cfg.Dicts))
	kanaKanji, singleTerm, err := engine.LoadDicts(cfg.Dicts)
	if err != nil {
		return fmt.Errorf("load dictionaries: %w", err)
	}
	fmt.Printf("Loaded %d kana-kanji readings, %d single-term readings.\n", len(kanaKanji), len(singleTerm))

	kanaKanjiPath := filepath.Join(outDir, "kana_kanji.db")
	if _, err := dict.BuildSQLite(kanaKanjiPath, kanaKanji, dict.Fingerprint(kanaKanji)); err != nil {
		return fmt.Errorf("build kana-kanji store: %w", err)
	}
	fmt.Printf("Wrote kana-kanji dictionary to %s\n", kanaKanjiPath)

	singleTermPath := filepath.Join(outDir, "single_term.db")
	if _, err := dict.BuildSQLite(singleTermPath, singleTerm, dict.Fingerprint(singleTerm)); err != nil {
		return fmt.Errorf("build single-term store: %w", err)
	}
	fmt.Printf("Wrote single-term dictionary to %s\n", singleTermPath)

	words := map[string]float32{}
	for yomi, surfaces := range kanaKanji {
		for _, surface := range surfaces {
			words[surface+"/"+yomi] = graph.DefaultScore
		}
	}
	for yomi, surfaces := range singleTerm {
		for _, surface := range surfaces {
			words[surface+"/"+yomi] = graph.DefaultScore
		}
	}

	unigramPath := filepath.Join(outDir, "unigram.db")
	uni, err := lm.BuildUnigramLM(trie.SQLiteBuilder{Path: unigramPath}, words, graph.DefaultScore, graph.DefaultScore)
	if err != nil {
		return fmt.Errorf("build unigram model: %w", err)
	}
	fmt.Printf("Wrote unigram model (%d words) to %s\n", uni.NumKeys()-2, unigramPath)

	bigramPath := filepath.Join(outDir, "bigram.db")
	bi, err := lm.BuildBigramLM(trie.SQLiteBuilder{Path: bigramPath}, map[[2]int]float32{}, graph.DefaultScore)
	if err != nil {
		return fmt.Errorf("build bigram model: %w", err)
	}
	fmt.Printf("Wrote bigram model (%d edges) to %s\n", bi.NumKeys()-1, bigramPath)

	return nil
}
