// Package metadata parses the vision service's fixed-format response: one
// "Asset Name:" line carrying a bilingual name and one "Tags:" line carrying
// a comma-separated bilingual tag list. Responses that do not match the shape
// are reported as errors rather than coerced into empty fields.
package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is returned when the response is missing a required
// line or carries no usable asset name.
var ErrMalformedResponse = errors.New("response does not match the expected name/tags format")

// Metadata is the parsed result of one service response.
type Metadata struct {
	EnglishName string
	ArabicName  string
	Tags        []string
}

// Name separators the model emits between the English and Arabic halves,
// in match-preference order.
var nameSeparators = []string{" - ", " – ", " — ", " / ", " • ", " /", "/ ", " | ", "|"}

// Parse extracts the bilingual asset name and tag list from a raw response.
// The expected shape is two lines:
//
//	Asset Name: <English> / <Arabic>
//	Tags: tag, tag, ...
//
// The parser tolerates the model's known deviations: an Arabic name on its
// own follow-up line, and tag lists continued across extra lines (sometimes
// with English tags on one line and their Arabic counterparts on the next).
// A missing required line or an empty name yields ErrMalformedResponse.
func Parse(raw string) (Metadata, error) {
	lines := nonEmptyLines(raw)

	assetIdx, tagsIdx := -1, -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "asset name:") && assetIdx == -1:
			assetIdx = i
		case strings.HasPrefix(lower, "tags:") && tagsIdx == -1:
			tagsIdx = i
		}
	}

	if assetIdx == -1 {
		return Metadata{}, fmt.Errorf("%w: missing asset name line", ErrMalformedResponse)
	}
	if tagsIdx == -1 {
		return Metadata{}, fmt.Errorf("%w: missing tags line", ErrMalformedResponse)
	}

	assetValue := valueAfterColon(lines[assetIdx])
	tagsValue := valueAfterColon(lines[tagsIdx])

	// The model sometimes puts the Arabic half of the name on its own line
	// right after the asset name line.
	if assetValue != "" && !hasArabic(assetValue) && assetIdx+1 < len(lines) {
		next := lines[assetIdx+1]
		if hasArabic(next) && !strings.HasPrefix(strings.ToLower(next), "tags:") {
			assetValue = assetValue + " / " + next
		}
	}

	english, arabic := splitBilingualName(assetValue)
	if english == "" && arabic == "" {
		return Metadata{}, fmt.Errorf("%w: asset name line carries no name", ErrMalformedResponse)
	}

	tags := mergeTagLines(tagsValue, tagContinuationLines(lines, tagsIdx))

	return Metadata{
		EnglishName: english,
		ArabicName:  arabic,
		Tags:        tags,
	}, nil
}

// nonEmptyLines splits raw text into trimmed, non-empty lines.
func nonEmptyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func valueAfterColon(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// tagContinuationLines collects lines after the tags line that still look
// like tag content: comma-separated text or Arabic-only lines.
func tagContinuationLines(lines []string, tagsIdx int) []string {
	var continuation []string
	for _, line := range lines[tagsIdx+1:] {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "asset name:") || strings.HasPrefix(lower, "tags:") {
			break
		}
		if strings.ContainsAny(line, ",،") {
			continuation = append(continuation, line)
			continue
		}
		if hasArabic(line) && !hasLatin(line) {
			continuation = append(continuation, line)
			continue
		}
		break
	}
	return continuation
}

// mergeTagLines combines the primary tag line with any continuation lines.
// When the primary line is English-only and the continuation is Arabic-only,
// tags are paired by index to recover bilingual entries.
func mergeTagLines(primary string, continuation []string) []string {
	primaryTags := splitTags(primary)
	extraTags := splitTags(strings.Join(continuation, ", "))

	if len(continuation) == 0 || len(extraTags) == 0 {
		return primaryTags
	}
	if len(primaryTags) == 0 {
		return extraTags
	}

	primaryLatinOnly := 0
	for _, tag := range primaryTags {
		if hasLatin(tag) && !hasArabic(tag) {
			primaryLatinOnly++
		}
	}
	extraArabicOnly := 0
	for _, tag := range extraTags {
		if hasArabic(tag) && !hasLatin(tag) {
			extraArabicOnly++
		}
	}

	if primaryLatinOnly >= atLeastHalf(primaryTags) && extraArabicOnly >= atLeastHalf(extraTags) {
		pairCount := min(len(primaryTags), len(extraTags))
		paired := make([]string, 0, len(primaryTags)+len(extraTags)-pairCount)
		for i := 0; i < pairCount; i++ {
			paired = append(paired, primaryTags[i]+" / "+extraTags[i])
		}
		paired = append(paired, primaryTags[pairCount:]...)
		paired = append(paired, extraTags[pairCount:]...)
		return paired
	}

	return append(primaryTags, extraTags...)
}

func atLeastHalf(tags []string) int {
	if half := len(tags) / 2; half > 1 {
		return half
	}
	return 1
}

// splitTags splits a tag line on Latin and Arabic commas and cleans each
// segment.
func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '،'
	}) {
		if cleaned := cleanSegment(part); cleaned != "" {
			tags = append(tags, cleaned)
		}
	}
	return tags
}

// splitBilingualName splits "English / Arabic" (in either order and with any
// of the known separators) into its two halves, detecting which side is
// which by script.
func splitBilingualName(value string) (english, arabic string) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return "", ""
	}

	if strings.Contains(value, "|") {
		left, right, _ := strings.Cut(value, "|")
		left, right = strings.TrimSpace(left), strings.TrimSpace(right)
		if left != "" && right != "" {
			return left, right
		}
	}

	for _, sep := range nameSeparators {
		if !strings.Contains(value, sep) {
			continue
		}
		left, right, _ := strings.Cut(value, sep)
		left, right = strings.TrimSpace(left), strings.TrimSpace(right)
		if left == "" || right == "" {
			continue
		}
		leftArabic, rightArabic := hasArabic(left), hasArabic(right)
		if leftArabic == rightArabic {
			continue
		}
		if rightArabic {
			return cleanSegment(left), cleanSegment(right)
		}
		return cleanSegment(right), cleanSegment(left)
	}

	if !hasArabic(value) {
		return cleanSegment(value), ""
	}
	if !hasLatin(value) {
		return "", cleanSegment(value)
	}

	// Mixed scripts with no separator: split at the first script boundary.
	firstArabic := strings.IndexFunc(value, isArabicRune)
	firstLatin := strings.IndexFunc(value, isLatinRune)
	if firstLatin < firstArabic {
		return cleanSegment(value[:firstArabic]), cleanSegment(value[firstArabic:])
	}
	return cleanSegment(value[firstLatin:]), cleanSegment(value[:firstLatin])
}

// cleanSegment trims whitespace and stray separator punctuation from a name
// or tag fragment.
func cleanSegment(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, "-–—/|:•")
	return strings.TrimSpace(value)
}

func hasArabic(s string) bool {
	return strings.IndexFunc(s, isArabicRune) >= 0
}

func hasLatin(s string) bool {
	return strings.IndexFunc(s, isLatinRune) >= 0
}

// isArabicRune covers the Arabic blocks the model emits, including
// presentation forms.
func isArabicRune(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF,
		r >= 0x0750 && r <= 0x077F,
		r >= 0x08A0 && r <= 0x08FF,
		r >= 0xFB50 && r <= 0xFDFF,
		r >= 0xFE70 && r <= 0xFEFF:
		return true
	}
	return false
}

func isLatinRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
