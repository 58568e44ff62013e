package engine

import (
	"regexp"
	"strings"
)

// The compressor is an ordered list of rule stages evaluated in fixed
// priority order: fillers, connectors, operator extraction, technique
// keywords, qualifiers. Longest and most specific patterns come first so
// match precedence is explicit rather than implicit in control flow.

// fillerRules remove courtesy phrases and filler words that carry no
// instruction content.
var fillerRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bi (?:want|need|would like) you to\b`),
	regexp.MustCompile(`(?i)\bmake sure (?:you|to)\b`),
	regexp.MustCompile(`(?i)\b(?:can|could|would) you\b`),
	regexp.MustCompile(`(?i)\byou (?:should|must)\b`),
	regexp.MustCompile(`(?i)\bplease\b`),
	regexp.MustCompile(`(?i)\bkindly\b`),
	regexp.MustCompile(`(?i)\breally\b`),
	regexp.MustCompile(`(?i)\bvery\b`),
	regexp.MustCompile(`(?i)\bactually\b`),
	regexp.MustCompile(`(?i)\bbasically\b`),
	regexp.MustCompile(`(?i)\bessentially\b`),
	regexp.MustCompile(`(?i)\bobviously\b`),
	regexp.MustCompile(`(?i)\bcertainly\b`),
}

// aggressiveFillerRules are applied in aggressive mode on top of the
// standard set.
var aggressiveFillerRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bjust\b`),
	regexp.MustCompile(`(?i)\bsimply\b`),
	regexp.MustCompile(`(?i)\b(?:for|to) me\b`),
	regexp.MustCompile(`(?i)\b(?:a|an|the)\s+`),
}

// connectorRule rewrites a verbose English connector into a symbol.
type connectorRule struct {
	re    *regexp.Regexp
	glyph string
}

var connectorRules = []connectorRule{
	{regexp.MustCompile(`(?i)\band then\b`), "|"},
	{regexp.MustCompile(`(?i)\bfollowed by\b`), "|"},
	{regexp.MustCompile(`(?i)\bafter that\b`), "|"},
	{regexp.MustCompile(`(?i)\bas well as\b`), "+"},
	{regexp.MustCompile(`(?i)\bin addition to\b`), "+"},
	{regexp.MustCompile(`(?i)\balong with\b`), "+"},
	{regexp.MustCompile(`(?i)\badditionally\b`), "+"},
	{regexp.MustCompile(`(?i)\bwhich leads to\b`), "=>"},
	{regexp.MustCompile(`(?i)\bleading to\b`), "=>"},
	{regexp.MustCompile(`(?i)\bresults? in\b`), "=>"},
	{regexp.MustCompile(`(?i)\btherefore\b`), "=>"},
	{regexp.MustCompile(`(?i)\bconsequently\b`), "=>"},
	{regexp.MustCompile(`(?i)\bexcept for\b`), "~"},
	{regexp.MustCompile(`(?i)\bbut not\b`), "~"},
	{regexp.MustCompile(`(?i)\bunless\b`), "~"},
}

// stop is the shared terminator group for operator value captures:
// punctuation, a connective that the next rule may need, or end of line.
// RE2 has no lookahead, so the terminator is captured and re-emitted by
// separatorFor.
const stop = `(\s+(?:and|that|who|which|in|using|with|for|to|named|called)\b|[.,;:]|$)`

// operatorRule extracts one operator from a recognized phrase. The first
// capture group is the value; the second is the terminator.
type operatorRule struct {
	re        *regexp.Regexp
	token     string
	normalize func(string) string
}

// operatorRules in priority order. Role detection outranks objective
// detection, which outranks constraints and output format, matching the
// priority the notation gives each operator.
var operatorRules = []operatorRule{
	{
		re:        regexp.MustCompile(`(?i)\b(?:act as|assume the role of|take on the role of|you are|you're)\s+(?:a |an )?([a-z][a-z /-]{1,40}?)` + stop),
		token:     "ACT",
		normalize: normalizeRole,
	},
	{
		re:        regexp.MustCompile(`(?i)\b((?:senior|expert|professional|experienced)\s+[a-z]+(?:\s+(?:developer|engineer|architect|analyst|designer|scientist))?)` + stop),
		token:     "ACT",
		normalize: normalizeRole,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:(?:my |your |the )?(?:objective|goal|task) is to |i need |we need to )(?:write |create |build )?([a-z][a-z0-9 '_/-]{1,50}?)` + stop),
		token:     "OBJ",
		normalize: normalizeTerm,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:write|create|generate|produce|develop|design|build|implement)\s+((?:a |an |the )?[a-z][a-z0-9 '_/-]{1,50}?)` + stop),
		token:     "OBJ",
		normalize: normalizeTerm,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:without|no more than|at most|at least|limited to|a maximum of|a minimum of|avoid)\s+([a-z0-9][a-z0-9 '_/-]{1,40}?)` + stop),
		token:     "LIM",
		normalize: normalizeTerm,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:output|respond|answer|returns?|provides?|formatted)(?:\s+(?:it|everything|me|us))?(?:\s+(?:as|in|with))?\s+(?:a |an |the )?([a-z][a-z0-9 '+/-]{1,40}?)` + stop),
		token:     "OUT",
		normalize: normalizeOutput,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:based on|given that|given|considering|in the context of|with the following)\s+([a-z][a-z0-9 '_/-]{1,40}?)` + stop),
		token:     "CTX",
		normalize: normalizeTerm,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:summarize|give me a summary of|list the top|highlight)\s+([a-z0-9][a-z0-9 '_/-]{1,40}?)` + stop),
		token:     "SUM",
		normalize: normalizeTerm,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:evaluate|assess|critique|review|examine)\s+((?:a |an |the )?[a-z][a-z0-9 '_/-]{1,40}?)` + stop),
		token:     "EVAL",
		normalize: normalizeTerm,
	},
	{
		re:        regexp.MustCompile(`(?i)\b(?:visualize|draw|diagram of|chart of)\s+((?:a |an |the )?[a-z][a-z0-9 '_/-]{1,40}?)` + stop),
		token:     "VIS",
		normalize: normalizeTerm,
	},
}

// techniqueRule replaces a fixed keyword with a canned operator token.
// Only the first occurrence per line is rewritten. Longest phrases first.
type techniqueRule struct {
	re      *regexp.Regexp
	literal string
}

var techniqueRules = []techniqueRule{
	{regexp.MustCompile(`(?i)\bchain[- ]of[- ]thought\b`), "THINK:ChainOfThought"},
	{regexp.MustCompile(`(?i)\bstep[- ]by[- ]step\b`), "THINK:StepByStep"},
	{regexp.MustCompile(`(?i)\berror handling\b`), "FEATURE:Error_Handling"},
	{regexp.MustCompile(`(?i)\bbullet points?\b`), "OUT:Bullets"},
	{regexp.MustCompile(`(?i)\btype hints?\b`), "DOC:TypeHints"},
	{regexp.MustCompile(`(?i)\bunit tests?\b`), "TEST:Unit"},
	{regexp.MustCompile(`(?i)\bdocstrings?\b`), "DOC:Docstring"},
	{regexp.MustCompile(`(?i)\bmarkdown\b`), "OUT:Markdown"},
	{regexp.MustCompile(`(?i)\bjson\b`), "OUT:JSON"},
	{regexp.MustCompile(`(?i)\btable\b`), "OUT:Table"},
	{regexp.MustCompile(`(?i)\bscript\b`), "GEN:Script"},
	{regexp.MustCompile(`(?i)\bfunction\b`), "GEN:Function"},
	{regexp.MustCompile(`(?i)\bcode\b`), "GEN:Code"},
	{regexp.MustCompile(`(?i)\bconcise\b`), "LIM:Concise"},
	{regexp.MustCompile(`(?i)\bdetailed\b`), "LIM:Detailed"},
	{regexp.MustCompile(`(?i)\bbrief\b`), "LIM:Brief"},
	{regexp.MustCompile(`(?i)\bsecurity\b`), "EVAL:Security"},
	{regexp.MustCompile(`(?i)\bperformance\b`), "EVAL:Performance"},
	{regexp.MustCompile(`(?i)\bbugs?\b`), "EVAL:Bugs"},
}

// qualifierRule detects a trailing qualifier and emits a bracketed
// parameter item; adjacent items are merged into one group afterwards.
type qualifierRule struct {
	re   *regexp.Regexp
	emit func(match []string) string
}

var qualifierRules = []qualifierRule{
	{
		re: regexp.MustCompile(`(?i)\bin\s+(python|javascript|typescript|java|golang|go|rust|c\+\+|c#|ruby|php|sql|swift|kotlin)\b`),
		emit: func(m []string) string {
			return "[Lang:" + canonicalLanguage(m[1]) + "]"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(?:using|with)\s+(django|fastapi|flask|react|vue|angular|spring boot|rails|express|laravel)\b`),
		emit: func(m []string) string {
			return "[Framework:" + smartTitle(m[1]) + "]"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(?:named|called)\s+([a-z_][a-z0-9_]*)`),
		emit: func(m []string) string {
			// Identifier names stay verbatim.
			return "[Name:" + m[1] + "]"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(?:in\s+|of\s+)?(\d+)\s+words?\b`),
		emit: func(m []string) string {
			return "[Len:" + m[1] + "w]"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bfor\s+(beginners|experts|children|teens|adults|developers|executives)\b`),
		emit: func(m []string) string {
			return "[Audience:" + smartTitle(m[1]) + "]"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bwithin\s+(\d+)\s+(days?|hours?|weeks?|months?|years?)\b`),
		emit: func(m []string) string {
			return "@" + m[1] + unitAbbrev(m[2])
		},
	},
}

// separatorFor decides what a captured terminator contributes back to the
// text. Relativizers are dropped; connectives and punctuation that later
// rules may need are kept.
func separatorFor(sep string) string {
	switch strings.ToLower(strings.TrimSpace(sep)) {
	case "that", "who", "which":
		return ""
	case "":
		return ""
	default:
		return sep
	}
}

// roleMap canonicalizes common roles, checked by containment in order.
var roleMap = []struct{ key, val string }{
	{"senior developer", "Senior_Dev"},
	{"senior dev", "Senior_Dev"},
	{"data scientist", "DataScientist"},
	{"architect", "Architect"},
	{"analyst", "Analyst"},
	{"consultant", "Consultant"},
	{"teacher", "Teacher"},
	{"writer", "Writer"},
	{"designer", "Designer"},
	{"engineer", "Engineer"},
	{"scientist", "Scientist"},
	{"researcher", "Researcher"},
	{"doctor", "Doctor"},
	{"lawyer", "Lawyer"},
	{"expert", "Expert"},
}

// normalizeRole canonicalizes a detected role name.
func normalizeRole(role string) string {
	lower := strings.ToLower(strings.TrimSpace(role))
	for _, rm := range roleMap {
		if strings.Contains(lower, rm.key) {
			return rm.val
		}
	}
	return smartTitle(role)
}

// outputMap canonicalizes common output formats, checked by containment.
var outputMap = []struct{ key, val string }{
	{"json", "JSON"},
	{"csv", "CSV"},
	{"yaml", "YAML"},
	{"xml", "XML"},
	{"html", "HTML"},
	{"markdown", "Markdown"},
	{"table", "Table"},
	{"python", "Python"},
	{"javascript", "JavaScript"},
	{"bullet", "Bullets"},
	{"paragraph", "Paragraph"},
	{"list", "List"},
	{"code", "Code"},
}

// normalizeOutput canonicalizes a detected output format. Unrecognized
// formats become plus-joined title words, e.g. "Detailed+Answers".
func normalizeOutput(output string) string {
	lower := strings.ToLower(strings.TrimSpace(output))
	for _, om := range outputMap {
		if strings.Contains(lower, om.key) {
			return om.val
		}
	}
	words := strings.Fields(output)
	for i, w := range words {
		words[i] = smartTitleWord(w)
	}
	return strings.Join(words, "+")
}

// termArticleRegex strips articles and small connectives from values.
var termArticleRegex = regexp.MustCompile(`(?i)\b(?:a|an|the|for|to|and|or)\b\s*`)

// normalizeTerm shortens a captured value into Underscore_Title form.
func normalizeTerm(term string) string {
	term = termArticleRegex.ReplaceAllString(term, "")
	return smartTitle(term)
}

// smartTitle underscore-joins words, capitalizing each unless it already
// carries interior upper case (acronyms like "AI" stay intact).
func smartTitle(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = smartTitleWord(w)
	}
	return strings.Join(words, "_")
}

func smartTitleWord(w string) string {
	if w == "" {
		return w
	}
	if strings.ToLower(w) != w {
		// Already mixed or upper case; leave alone.
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// canonicalLanguage fixes the casing of a detected language name.
func canonicalLanguage(lang string) string {
	switch strings.ToLower(lang) {
	case "javascript":
		return "JavaScript"
	case "typescript":
		return "TypeScript"
	case "php":
		return "PHP"
	case "sql":
		return "SQL"
	case "c++":
		return "C++"
	case "c#":
		return "C#"
	case "golang", "go":
		return "Go"
	default:
		return smartTitleWord(strings.ToLower(lang))
	}
}

// unitAbbrev shortens a time unit for @ markers: "days" -> "d".
func unitAbbrev(unit string) string {
	unit = strings.ToLower(unit)
	switch {
	case strings.HasPrefix(unit, "hour"):
		return "h"
	case strings.HasPrefix(unit, "day"):
		return "d"
	case strings.HasPrefix(unit, "week"):
		return "w"
	case strings.HasPrefix(unit, "month"):
		return "mo"
	case strings.HasPrefix(unit, "year"):
		return "y"
	default:
		return unit
	}
}
