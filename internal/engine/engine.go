// Package engine implements the L-ZIP compressor and expander: a
// deterministic, stateless find/replace over a fixed rule list. Compression
// replaces recognized English phrases with operator tokens; expansion is the
// inverse lookup. Both run single-pass on the calling goroutine with no
// shared mutable state.
package engine

import "strings"

// Options controls compression behavior.
type Options struct {
	// Aggressive additionally strips articles and weak qualifiers.
	Aggressive bool
}

// Result is the outcome of one compression call. Immutable; consumed by
// the caller for display only.
type Result struct {
	Original   string `json:"original"`
	Compressed string `json:"compressed"`

	OriginalWords   int `json:"original_words"`
	CompressedWords int `json:"compressed_words"`

	// Token counts are heuristic estimates (runes / 4), not a real
	// model tokenizer.
	OriginalTokens   int `json:"original_tokens"`
	CompressedTokens int `json:"compressed_tokens"`

	// SavingsPercent is (1 - compressed/original) * 100, one decimal.
	// Zero when the original estimate is zero; negative values are
	// reported as-is when compression expands the text.
	SavingsPercent float64 `json:"savings_percent"`
}

// Pair is one key-value qualifier inside a parameter group.
type Pair struct {
	Key string `json:"key"`
	Val string `json:"val"`
}

// ParamGroup is an ordered sequence of qualifiers bracketed together in
// compressed output, e.g. [Lang:Python, Framework:Django]. Groups exist
// only within a single compress or expand call.
type ParamGroup struct {
	Pairs []Pair `json:"pairs"`
}

// String renders the group in wire form.
func (g ParamGroup) String() string {
	parts := make([]string, 0, len(g.Pairs))
	for _, p := range g.Pairs {
		if p.Key == "" {
			parts = append(parts, p.Val)
			continue
		}
		parts = append(parts, p.Key+":"+p.Val)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseGroups extracts every bracketed parameter group from an L-ZIP
// string, in order of appearance. Items without a colon become pairs with
// an empty key.
func ParseGroups(s string) []ParamGroup {
	groups := make([]ParamGroup, 0, 4)
	for _, m := range groupRegex.FindAllStringSubmatch(s, -1) {
		groups = append(groups, parseGroupBody(m[1]))
	}
	return groups
}

// parseGroupBody splits "Key1:Val1, Key2:Val2" into pairs.
func parseGroupBody(body string) ParamGroup {
	var g ParamGroup
	for _, item := range strings.Split(body, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, val, ok := strings.Cut(item, ":")
		if !ok {
			g.Pairs = append(g.Pairs, Pair{Val: item})
			continue
		}
		g.Pairs = append(g.Pairs, Pair{Key: strings.TrimSpace(key), Val: strings.TrimSpace(val)})
	}
	return g
}
