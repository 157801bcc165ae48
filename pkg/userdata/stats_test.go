package userdata

import "testing"

func TestCalcCost(t *testing.T) {
	// Sanity check against the formula rather than a magic constant: a
	// word seen in every observation should cost less than one seen rarely.
	frequent := calcCost(100, 1, 100)
	rare := calcCost(1, 1, 100)
	if frequent >= rare {
		t.Errorf("calcCost(frequent)=%v should be < calcCost(rare)=%v", frequent, rare)
	}
}

func TestUniGramUserStatsRecordAndGet(t *testing.T) {
	s := newUniGramUserStats(0, 0, nil)
	if _, ok := s.getCost("私/わたし"); ok {
		t.Errorf("getCost on empty stats should miss")
	}

	s.recordEntries(candidatesFor("私", "わたし"))
	cost, ok := s.getCost("私/わたし")
	if !ok {
		t.Fatalf("getCost should hit after recordEntries")
	}
	if cost <= 0 {
		t.Errorf("cost = %v, want positive", cost)
	}
}

func TestBiGramUserStatsRecordAndGet(t *testing.T) {
	s := newBiGramUserStats(0, 0, nil)
	cands := append(candidatesFor("私", "わたし"), candidatesFor("は", "は")...)
	s.recordEntries(cands)

	if _, ok := s.getCost("私/わたし", "は/は"); !ok {
		t.Errorf("getCost should hit for recorded bigram")
	}
	if _, ok := s.getCost("は/は", "私/わたし"); ok {
		t.Errorf("getCost should miss for the reversed pair")
	}
}
