// Package dynamic evaluates the small set of dynamic placeholder surfaces
// (today's date, the current time, kanji numerals) a candidate can carry
// instead of a literal surface string.
package dynamic

var nums = [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
var subs = [4]string{"", "十", "百", "千"}
var parts = [18]string{
	"", "万", "億", "兆", "京", "垓", "𥝱", "穣", "溝", "澗",
	"正", "載", "極", "恒河沙", "阿僧祇", "那由他", "不可思議", "無量大数",
}

// Int2Kanji renders i as a kanji numeral, e.g. 10020 -> "一万二十".
func Int2Kanji(i int64) string {
	if i == 0 {
		return "零"
	}

	digits := digitsOf(i)
	var buf []string
	for idx, d := range digits {
		if idx%4 == 0 && idx > 0 && anyNonZero(digits, idx, min(idx+4, len(digits))) {
			buf = append(buf, parts[idx/4])
		}
		if d != 0 {
			buf = append(buf, subs[idx%4])
		}
		if !(idx%4 != 0 && d == 1) {
			// Suppress the bare "一" in front of 十/百/千 (e.g. "十一", not "一十一").
			buf = append(buf, nums[d])
		}
	}
	reverse(buf)
	result := ""
	for _, s := range buf {
		result += s
	}
	return result
}

// digitsOf returns i's decimal digits, least-significant first.
func digitsOf(i int64) []int {
	s := intToString(i)
	digits := make([]int, len(s))
	for k := 0; k < len(s); k++ {
		digits[len(s)-1-k] = int(s[k] - '0')
	}
	return digits
}

func intToString(i int64) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

func anyNonZero(digits []int, start, end int) bool {
	for i := start; i < end && i < len(digits); i++ {
		if digits[i] != 0 {
			return true
		}
	}
	return false
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
