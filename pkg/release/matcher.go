package release

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

func confidenceFor(score float64) MatchConfidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Candidate is a lookup result to be ranked against a parsed name.
type Candidate struct {
	ID            int64
	Title         string
	OriginalTitle string
	Year          int
}

// MatchResult represents the result of a fuzzy title match.
type MatchResult struct {
	Candidate  Candidate
	Score      float64         // Jaro-Winkler similarity, adjusted for numbers and year
	Confidence MatchConfidence // Confidence level based on score
}

// MatchTitle finds the best match for a parsed title against candidate titles.
func MatchTitle(parsed string, titles []string) MatchResult {
	candidates := make([]Candidate, len(titles))
	for i, t := range titles {
		candidates[i] = Candidate{Title: t}
	}
	return BestCandidate(parsed, 0, candidates)
}

// BestCandidate ranks candidates by Jaro-Winkler similarity of their cleaned
// titles (original titles count too), adjusted for sequence numbers and, when
// year is non-zero, for release year. The zero result has ConfidenceNone.
func BestCandidate(parsed string, year int, candidates []Candidate) MatchResult {
	best := MatchResult{Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	normalizedParsed := CleanTitle(parsed)
	parsedNumbers := extractNumbers(normalizedParsed)

	for _, c := range candidates {
		score := titleScore(normalizedParsed, parsedNumbers, c.Title)
		if c.OriginalTitle != "" && c.OriginalTitle != c.Title {
			score = max(score, titleScore(normalizedParsed, parsedNumbers, c.OriginalTitle))
		}
		score = adjustScoreForYear(score, year, c.Year)

		if score > best.Score {
			best.Candidate = c
			best.Score = score
		}
	}

	best.Confidence = confidenceFor(best.Score)
	if best.Confidence == ConfidenceNone {
		best.Candidate = Candidate{}
	}
	return best
}

func titleScore(normalizedParsed string, parsedNumbers []string, title string) float64 {
	normalized := CleanTitle(title)
	score := float64(edlib.JaroWinklerSimilarity(normalizedParsed, normalized))
	return adjustScoreForNumbers(score, parsedNumbers, extractNumbers(normalized))
}

// extractNumbers returns all numeric sequences from a normalized title.
func extractNumbers(title string) []string {
	return numberRegex.FindAllString(title, -1)
}

// adjustScoreForNumbers rewards matching sequence numbers and penalizes
// missing or different ones. Titles without numbers are unaffected.
func adjustScoreForNumbers(score float64, parsedNums, candidateNums []string) float64 {
	if len(parsedNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range parsedNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

// adjustScoreForYear favours candidates released in the parsed year. One year
// off is tolerated since release and air dates often straddle a new year.
func adjustScoreForYear(score float64, parsed, candidate int) float64 {
	if parsed == 0 || candidate == 0 {
		return score
	}
	switch diff := parsed - candidate; {
	case diff == 0:
		return min(score*1.05, 1.0)
	case diff == 1 || diff == -1:
		return score
	default:
		return score * 0.85
	}
}
