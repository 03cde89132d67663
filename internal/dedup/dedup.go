// Package dedup disambiguates duplicate asset names within a batch by
// appending ordinal suffixes. Names are compared through an aggressive
// normalization (NFKC, Arabic letter folding, diacritic stripping) so that
// visually equivalent names collide even when their code points differ.
package dedup

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/assetdesk/metagen/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// arabicLetterFolds maps Arabic letter variants onto a canonical form so
// that e.g. alef with hamza matches bare alef.
var arabicLetterFolds = map[rune]rune{
	'آ': 'ا', // alef with madda above -> alef
	'أ': 'ا', // alef with hamza above -> alef
	'إ': 'ا', // alef with hamza below -> alef
	'ٱ': 'ا', // alef wasla -> alef
	'ى': 'ي', // alef maksura -> yeh
	'ؤ': 'و', // waw with hamza -> waw
	'ئ': 'ي', // yeh with hamza -> yeh
	'ة': 'ه', // teh marbuta -> heh
}

// ApplySuffixes returns a copy of the result list where duplicated English
// and Arabic names carry " - NNN" suffixes. Results are never reordered and
// failed results keep their empty names untouched.
func ApplySuffixes(results []domain.TaskResult) []domain.TaskResult {
	english := make([]string, len(results))
	arabic := make([]string, len(results))
	for i, r := range results {
		english[i] = r.EnglishName
		arabic[i] = r.ArabicName
	}

	english = applySuffixes(english)
	arabic = applySuffixes(arabic)

	updated := make([]domain.TaskResult, len(results))
	for i, r := range results {
		r.EnglishName = english[i]
		r.ArabicName = arabic[i]
		updated[i] = r
	}
	return updated
}

// applySuffixes appends " - NNN" to every name whose normalized key occurs
// more than once, numbering duplicates in input order.
func applySuffixes(names []string) []string {
	keys := make([]string, len(names))
	counts := make(map[string]int)
	for i, name := range names {
		keys[i] = normalizeKey(name)
		if keys[i] != "" {
			counts[keys[i]]++
		}
	}

	seen := make(map[string]int)
	updated := make([]string, len(names))
	for i, name := range names {
		base := strings.Join(strings.Fields(name), " ")
		if base == "" || counts[keys[i]] <= 1 {
			updated[i] = base
			continue
		}
		seen[keys[i]]++
		updated[i] = fmt.Sprintf("%s - %03d", base, seen[keys[i]])
	}
	return updated
}

// normalizeKey produces a comparison key: NFKC-normalized, Arabic variants
// folded, Arabic-Indic digits mapped to ASCII, case-folded, with combining
// marks and format characters removed and punctuation collapsed to spaces.
func normalizeKey(value string) string {
	value = norm.NFKC.String(value)

	var b strings.Builder
	for _, r := range value {
		if folded, ok := arabicLetterFolds[r]; ok {
			r = folded
		}
		switch {
		case r == 'ـ': // tatweel, purely presentational
			continue
		case r >= '٠' && r <= '٩': // Arabic-Indic digits
			r = '0' + (r - '٠')
		case r >= '۰' && r <= '۹': // extended Arabic-Indic digits
			r = '0' + (r - '۰')
		}

		switch {
		case unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf):
			continue
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
