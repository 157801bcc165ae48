package graph

import "unicode/utf8"

// keepCurrent returns the unchanged byte ranges each clause currently
// occupies, used whenever an extend operation has nothing left to do.
func keepCurrent(clauses [][]Candidate) []Range {
	var result []Range
	offset := 0
	for _, clause := range clauses {
		yomiLen := len(clause[0].Yomi)
		result = append(result, Range{offset, offset + yomiLen})
		offset += yomiLen
	}
	return result
}

func lastRuneLen(s string) int {
	_, size := utf8.DecodeLastRuneInString(s)
	return size
}

func firstRuneLen(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	return size
}

// ExtendRight grows the selection of currentClause one character to the
// right, shrinking (or removing) the clause immediately after it.
// currentClause is 0-origin from the left.
func ExtendRight(clauses [][]Candidate, currentClause int) []Range {
	if len(clauses) == 0 {
		return nil
	}
	if currentClause == len(clauses)-1 {
		return keepCurrent(clauses)
	}

	var result []Range
	offset := 0
	for i, clause := range clauses {
		candidate := clause[0]
		switch {
		case currentClause == i:
			nextCandidate := clauses[i+1][0]
			result = append(result, Range{offset, offset + len(candidate.Yomi) + firstRuneLen(nextCandidate.Yomi)})
		case currentClause+1 == i:
			firstLen := firstRuneLen(candidate.Yomi)
			start := offset + firstLen
			end := offset + firstLen + len(candidate.Yomi) - firstLen
			if start < end {
				result = append(result, Range{start, end})
			}
		default:
			result = append(result, Range{offset, offset + len(candidate.Yomi)})
		}
		offset += len(candidate.Yomi)
	}
	return result
}

// ExtendLeft grows the selection of currentClause one character to the
// left, shrinking (or removing) the clause immediately before it. For the
// first clause there is nothing to the left, so that clause instead loses
// its last character to the following clause (or, when it is the only
// clause, that character becomes a clause of its own).
// currentClause is 0-origin from the left.
func ExtendLeft(clauses [][]Candidate, currentClause int) []Range {
	if len(clauses) == 0 {
		return nil
	}

	if len(clauses) == 1 {
		yomi := clauses[0][0].Yomi
		if utf8.RuneCountInString(yomi) <= 1 {
			return keepCurrent(clauses)
		}
		lastLen := lastRuneLen(yomi)
		return []Range{
			{0, len(yomi) - lastLen},
			{len(yomi) - lastLen, len(yomi)},
		}
	}

	if currentClause == 0 {
		if utf8.RuneCountInString(clauses[0][0].Yomi) == 1 {
			return keepCurrent(clauses)
		}

		var result []Range
		offset := 0
		for i, clause := range clauses {
			yomi := clause[0].Yomi
			switch {
			case i == currentClause:
				result = append(result, Range{offset, offset + len(yomi) - lastRuneLen(yomi)})
			case i == currentClause+1:
				prevLastLen := lastRuneLen(clauses[i-1][0].Yomi)
				start := offset - prevLastLen
				end := start + len(yomi) + prevLastLen
				if start < end {
					result = append(result, Range{start, end})
				}
			default:
				result = append(result, Range{offset, offset + len(yomi)})
			}
			offset += len(yomi)
		}
		return result
	}

	var result []Range
	offset := 0
	for i, clause := range clauses {
		yomi := clause[0].Yomi
		var start, end int
		switch {
		case i == currentClause:
			prevLastLen := lastRuneLen(clauses[i-1][0].Yomi)
			start = offset - prevLastLen
			end = start + len(yomi) + prevLastLen
		case i == currentClause-1:
			start = offset
			end = offset + len(yomi) - lastRuneLen(yomi)
		default:
			start = offset
			end = offset + len(yomi)
		}
		if start < end {
			result = append(result, Range{start, end})
		}
		offset += len(yomi)
	}
	return result
}
