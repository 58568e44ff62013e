package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Compress translates natural-language text into L-ZIP form and reports
// estimated savings. Empty input yields a zero-valued Result, not an
// error. Line breaks and capitalization outside matched spans are
// preserved; matching is case-insensitive.
func Compress(text string, opts Options) Result {
	result := Result{
		Original:       text,
		OriginalWords:  CountWords(text),
		OriginalTokens: EstimateTokens(text),
	}

	if strings.TrimSpace(text) == "" {
		return result
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = compressLine(line, opts)
	}
	compressed := strings.Join(lines, "\n")

	result.Compressed = compressed
	result.CompressedWords = CountWords(compressed)
	result.CompressedTokens = EstimateTokens(compressed)
	result.SavingsPercent = SavingsPercent(result.OriginalTokens, result.CompressedTokens)
	return result
}

// compressLine runs the rule stages over a single line.
func compressLine(line string, opts Options) string {
	p := newProtector()
	s := sanitize(line)

	for _, re := range fillerRules {
		s = re.ReplaceAllString(s, " ")
	}
	if opts.Aggressive {
		for _, re := range aggressiveFillerRules {
			s = re.ReplaceAllString(s, " ")
		}
	}

	for _, c := range connectorRules {
		s = c.re.ReplaceAllString(s, " "+c.glyph+" ")
	}

	for _, r := range operatorRules {
		s = applyOperatorRule(s, r, p)
	}

	for _, t := range techniqueRules {
		s = applyTechniqueRule(s, t, p)
	}

	for _, q := range qualifierRules {
		s = applyQualifierRule(s, q, p)
	}

	s = cleanupLine(s)
	s = p.restore(s)
	return mergeGroups(s)
}

// applyOperatorRule replaces every phrase the rule recognizes with its
// protected TOKEN:Value form, re-emitting the captured terminator.
func applyOperatorRule(s string, r operatorRule, p *protector) string {
	return r.re.ReplaceAllStringFunc(s, func(match string) string {
		m := r.re.FindStringSubmatch(match)
		if m == nil {
			return match
		}
		value := r.normalize(m[1])
		if value == "" {
			return match
		}
		return p.protect(r.token+":"+value) + separatorFor(m[2])
	})
}

// applyTechniqueRule rewrites only the first keyword occurrence per line.
func applyTechniqueRule(s string, t techniqueRule, p *protector) string {
	loc := t.re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + p.protect(t.literal) + s[loc[1]:]
}

// applyQualifierRule emits protected bracket items for every match.
func applyQualifierRule(s string, q qualifierRule, p *protector) string {
	return q.re.ReplaceAllStringFunc(s, func(match string) string {
		m := q.re.FindStringSubmatch(match)
		if m == nil {
			return match
		}
		return p.protect(q.emit(m))
	})
}

var (
	spaceBeforePunct = regexp.MustCompile(`\s+([.,;:])`)
	repeatedCommas   = regexp.MustCompile(`[,;]{2,}`)
	multiSpace       = regexp.MustCompile(`[ \t]{2,}`)
	trailingCommas   = regexp.MustCompile(`\s*[,;:]+\s*$`)
	adjacentGroups   = regexp.MustCompile(`\]\s*\[`)
)

// cleanupLine collapses the whitespace and punctuation debris left by
// phrase removal.
func cleanupLine(s string) string {
	s = multiSpace.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = repeatedCommas.ReplaceAllString(s, ",")
	s = trailingCommas.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// mergeGroups joins adjacent bracket items into one parameter group,
// preserving first-seen order: "[A:1] [B:2]" -> "[A:1, B:2]".
func mergeGroups(s string) string {
	return adjacentGroups.ReplaceAllString(s, ", ")
}

// sanitize drops control characters except tab, mirroring what the
// interactive shell does with pasted text.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r >= 0x20 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// protector shields emitted fragments from later rule stages. Fragments
// are swapped for NUL-delimited placeholders and restored after cleanup.
type protector struct {
	fragments []string
}

func newProtector() *protector {
	return &protector{}
}

// protect stores a fragment and returns its placeholder.
func (p *protector) protect(fragment string) string {
	p.fragments = append(p.fragments, fragment)
	return "\x00" + strconv.Itoa(len(p.fragments)-1) + "\x00"
}

var placeholderRegex = regexp.MustCompile("\x00(\\d+)\x00")

// restore substitutes fragments back for their placeholders.
func (p *protector) restore(s string) string {
	if len(p.fragments) == 0 {
		return s
	}
	return placeholderRegex.ReplaceAllStringFunc(s, func(ph string) string {
		idx, err := strconv.Atoi(ph[1 : len(ph)-1])
		if err != nil || idx < 0 || idx >= len(p.fragments) {
			return ph
		}
		return p.fragments[idx]
	})
}
