package engine

import (
	"regexp"
	"strings"

	"github.com/ezixen/lzip/internal/dict"
)

var (
	// tokenRegex matches TOKEN:Value markers. Values may be a single
	// bracketed group ("CTX:[Code_Block]") or a plain word. Tokens are
	// upper-case by construction; anything else is ordinary text.
	tokenRegex = regexp.MustCompile(`\b([A-Z][A-Z0-9]{0,15}):(\[[^\[\]]*\]|[^\s\[\]]+)`)

	// groupRegex matches standalone bracketed parameter groups.
	groupRegex = regexp.MustCompile(`\[([^\[\]]+)\]`)

	// atMarkerRegex matches @ time/audience markers like "@6mo". The
	// marker must start a word; an email's "@" is ordinary text.
	atMarkerRegex = regexp.MustCompile(`(^|\s)@([A-Za-z0-9_]+)`)
)

// Expand translates an L-ZIP string back to readable English. Operator
// tokens resolve through the dictionary; unrecognized WORD: forms and
// plain text pass through verbatim. Round-trip is best-effort, not exact
// recovery of the original wording.
func Expand(lzip string) string {
	if strings.TrimSpace(lzip) == "" {
		return lzip
	}

	lines := strings.Split(lzip, "\n")
	for i, line := range lines {
		lines[i] = expandLine(line)
	}
	return strings.Join(lines, "\n")
}

func expandLine(line string) string {
	s := tokenRegex.ReplaceAllStringFunc(line, func(match string) string {
		m := tokenRegex.FindStringSubmatch(match)
		if m == nil {
			return match
		}
		entry, ok := dict.Get(m[1])
		if !ok {
			// Graceful degradation: unknown WORD: stays verbatim.
			return match
		}
		return operatorClause(entry, strings.Trim(m[2], "[]"))
	})

	s = groupRegex.ReplaceAllStringFunc(s, func(match string) string {
		body := match[1 : len(match)-1]
		return groupClause(parseGroupBody(body))
	})

	s = expandSymbols(s)
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// clauseTemplates maps operator tokens to their sentence frames. Tokens
// absent here fall back to "<tag>: <value>".
var clauseTemplates = map[string]string{
	"ACT":   "Act as %s",
	"OBJ":   "Objective: %s",
	"LIM":   "Limit: %s",
	"CTX":   "Context: %s",
	"OUT":   "Output format: %s",
	"SUM":   "Summarize: %s",
	"GEN":   "Generate %s",
	"EVAL":  "Evaluate %s",
	"THINK": "Reasoning: %s",
	"VIS":   "Visualize %s",
	"LEN":   "Length: %s",
	"LANG":  "in %s",
}

// operatorClause renders one TOKEN:Value marker as English.
func operatorClause(entry dict.Entry, value string) string {
	words := valueWords(value)
	if tmpl, ok := clauseTemplates[entry.Token]; ok {
		return strings.Replace(tmpl, "%s", words, 1)
	}
	return entry.Tag + ": " + words
}

// groupClause renders a parameter group as qualifier clauses.
func groupClause(g ParamGroup) string {
	clauses := make([]string, 0, len(g.Pairs))
	for _, p := range g.Pairs {
		clauses = append(clauses, qualifierClause(p))
	}
	return strings.Join(clauses, ", ")
}

// qualifierClause renders one Key:Val pair as a natural clause, e.g.
// [Lang:Python] -> "in Python".
func qualifierClause(p Pair) string {
	key := strings.ToLower(p.Key)
	switch key {
	case "":
		return valueWords(p.Val)
	case "lang", "language":
		return "in " + canonicalLanguage(p.Val)
	case "framework":
		return "using " + p.Val
	case "name":
		// Identifier names stay verbatim.
		return "named " + p.Val
	case "len", "length":
		return "with length " + p.Val
	case "audience":
		return "for " + valueWords(p.Val)
	case "topic":
		return "about " + valueWords(p.Val)
	}
	if tag, err := dict.LookupTag(strings.ToUpper(p.Key)); err == nil {
		return "with " + valueWords(p.Val) + " " + tag
	}
	return "with " + key + " " + valueWords(p.Val)
}

// valueReverseMap restores canned compressed values to their source
// phrases.
var valueReverseMap = map[string]string{
	"Senior_Dev":     "senior developer",
	"DataScientist":  "data scientist",
	"StepByStep":     "step-by-step reasoning",
	"ChainOfThought": "chain-of-thought reasoning",
}

// valueWords turns an Underscore_Value into readable words: underscores
// become spaces, "+" becomes "and", "/" and "|" become "or". Words are
// lowercased unless they carry upper case beyond the first letter
// (acronyms like JSON or AI stay intact).
func valueWords(value string) string {
	if v, ok := valueReverseMap[value]; ok {
		return v
	}
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.ReplaceAll(value, "+", " and ")
	value = strings.ReplaceAll(value, "/", " or ")
	value = strings.ReplaceAll(value, "|", " or ")

	words := strings.Fields(value)
	for i, w := range words {
		if w == "and" || w == "or" {
			continue
		}
		words[i] = lowerWord(w)
	}
	return strings.Join(words, " ")
}

// lowerWord lowercases a title-cased word but preserves acronyms and
// mixed-case identifiers.
func lowerWord(w string) string {
	rest := w[1:]
	if strings.ToLower(rest) != rest {
		return w
	}
	return strings.ToLower(w)
}

// expandSymbols replaces connector glyphs with their natural-language
// forms from the symbol table. Only whitespace-delimited glyphs count:
// the compressor always emits them space-padded, and a bare "//" inside
// a URL or "->" inside code is ordinary text.
func expandSymbols(s string) string {
	s = strings.ReplaceAll(s, " => ", " "+dict.ExpandSymbol("=>")+" ")
	s = strings.ReplaceAll(s, " -> ", " "+dict.ExpandSymbol("->")+" ")
	s = strings.ReplaceAll(s, " // ", " "+dict.ExpandSymbol("//")+" ")
	s = strings.ReplaceAll(s, " | ", ", "+dict.ExpandSymbol("|")+" ")
	s = strings.ReplaceAll(s, " + ", " "+dict.ExpandSymbol("+")+" ")
	s = strings.ReplaceAll(s, " ~ ", " "+dict.ExpandSymbol("~")+" ")
	s = atMarkerRegex.ReplaceAllString(s, "${1}"+dict.ExpandSymbol("@")+" $2")
	return s
}
