package graph

import (
	"time"

	"github.com/akaza-im/akaza-go/pkg/dynamic"
)

// Candidate is a resolved conversion choice: a surface form for a yomi span,
// with the path cost the resolver computed for it.
type Candidate struct {
	Surface      string
	Yomi         string
	Cost         float32
	CompoundWord bool
}

// NewCandidate builds a Candidate with CompoundWord left false.
func NewCandidate(yomi, surface string, cost float32) Candidate {
	return Candidate{Surface: surface, Yomi: yomi, Cost: cost}
}

// Key identifies the candidate for user-data recording: "surface/yomi".
func (c Candidate) Key() string {
	return c.Surface + "/" + c.Yomi
}

// SurfaceWithDynamic returns the surface to actually commit: the literal
// Surface, unless it's one of the dynamic sentinels (today's date, current
// time, a kanji numeral), in which case it's evaluated against now.
func (c Candidate) SurfaceWithDynamic(now time.Time) string {
	if !dynamic.IsDynamic(c.Surface) {
		return c.Surface
	}
	return dynamic.Eval(c.Surface, c.Yomi, now)
}
