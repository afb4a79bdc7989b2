package release

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// sequenceNumeral matches II-IX after a space. A lone "I" or "X" and a
// numeral opening the title ("VII Days") stay as they are.
var sequenceNumeral = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var arabic = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

// punctuation maps separators to spaces and drops apostrophes so that
// "Ocean's Eleven" and "Oceans.Eleven" clean alike.
var punctuation = strings.NewReplacer(
	"&", " and ",
	"-", " ",
	".", " ",
	"_", " ",
	"'", "",
	"’", "",
)

// NormalizeRomanNumerals converts Roman numerals (II-IX) to Arabic numbers.
func NormalizeRomanNumerals(s string) string {
	return sequenceNumeral.ReplaceAllStringFunc(s, func(m string) string {
		return " " + arabic[strings.ToLower(m[1:])]
	})
}

// CleanTitle reduces a title to a comparable key: folded width, lower case,
// Arabic sequence numbers, no accents, no punctuation and no leading article
// in any colon-separated segment. "ＳＰＹ×ＦＡＭＩＬＹ：" and "SPY×FAMILY:" clean
// the same way.
func CleanTitle(title string) string {
	s := fold(title)
	s = NormalizeRomanNumerals(strings.ToLower(s))
	s = punctuation.Replace(s)

	var b strings.Builder
	for i, segment := range strings.Split(s, ":") {
		if i > 0 {
			b.WriteByte(' ')
		}
		for _, r := range dropArticle(strings.TrimSpace(segment)) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// fold narrows full-width forms and strips combining marks.
func fold(s string) string {
	t := transform.Chain(width.Fold, norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func dropArticle(s string) string {
	for _, article := range [...]string{"the ", "a ", "an "} {
		if rest, ok := strings.CutPrefix(s, article); ok {
			return rest
		}
	}
	return s
}
