package dynamic

import (
	"strconv"
	"time"
)

// These sentinel surfaces let a dictionary entry stand in for a
// computed-at-conversion-time value instead of a literal string.
const (
	TodayHyphen   = "(*(*(TODAY-HYPHEN"
	TodaySlash    = "(*(*(TODAY-SLASH"
	TodayKanji    = "(*(*(TODAY-KANJI"
	NowKanji      = "(*(*(NOW-KANJI"
	NumberKansuji = "(*(*(NUMBER-KANSUJI"
)

// dynamicPrefix identifies a surface as one of the sentinels above.
const dynamicPrefix = "(*(*("

// IsDynamic reports whether surface is one of the recognized sentinels.
func IsDynamic(surface string) bool {
	return len(surface) >= len(dynamicPrefix) && surface[:len(dynamicPrefix)] == dynamicPrefix
}

// Eval resolves a dynamic surface against its paired yomi (used only by
// NumberKansuji, which parses the yomi as the number to render). now is
// injected so callers (and tests) control the clock.
func Eval(surface, yomi string, now time.Time) string {
	switch surface {
	case TodayHyphen:
		return now.Format("2006-01-02")
	case TodaySlash:
		return now.Format("2006/01/02")
	case TodayKanji:
		return now.Format("2006年01月02日")
	case NowKanji:
		return now.Format("15時04分")
	case NumberKansuji:
		n, err := strconv.ParseInt(yomi, 10, 64)
		if err != nil {
			return err.Error()
		}
		return Int2Kanji(n)
	default:
		return "不明な動的変換: " + surface
	}
}
