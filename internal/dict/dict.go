// Package dict holds the L-ZIP operator dictionary: a fixed table mapping
// canonical phrases to short operator tokens, plus the symbol table and
// prompt templates. The table is built once at init and never mutated.
package dict

import (
	"regexp"
	"strings"

	"github.com/ezixen/lzip/internal/errors"
)

// Category groups operators by task type.
type Category string

const (
	CategoryUniversal Category = "universal"
	CategoryCode      Category = "code"
	CategoryImage     Category = "image"
	CategoryVideo     Category = "video"
	CategoryAudio     Category = "audio"
	CategoryWriting   Category = "writing"
	CategoryAnalysis  Category = "analysis"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryUniversal, CategoryCode, CategoryImage, CategoryVideo,
	CategoryAudio, CategoryWriting, CategoryAnalysis,
}

// Entry is one operator in the dictionary.
type Entry struct {
	// Tag is the canonical natural-language phrase, e.g. "act as".
	Tag string `json:"tag"`

	// Token is the short operator form without the trailing colon, e.g. "ACT".
	// Tokens are always emitted upper-case.
	Token string `json:"token"`

	// Aliases are alternate phrases that resolve to the same token.
	Aliases []string `json:"aliases,omitempty"`

	// Description is the help-display text for this operator.
	Description string `json:"description"`

	// Category groups the operator for dict displays.
	Category Category `json:"category"`
}

// Marker returns the token in emitted form, e.g. "ACT:".
func (e Entry) Marker() string {
	return e.Token + ":"
}

// entries is the fixed operator table, in display order.
// Universal operators first, then task-specific categories.
var entries = []Entry{
	// Universal
	{Tag: "act as", Token: "ACT", Aliases: []string{"role", "persona"}, Description: "Set role or persona", Category: CategoryUniversal},
	{Tag: "objective", Token: "OBJ", Aliases: []string{"goal", "task"}, Description: "Primary objective", Category: CategoryUniversal},
	{Tag: "constraint", Token: "LIM", Aliases: []string{"limit", "restriction"}, Description: "Constraints and limits", Category: CategoryUniversal},
	{Tag: "context", Token: "CTX", Aliases: []string{"given"}, Description: "Background context", Category: CategoryUniversal},
	{Tag: "output format", Token: "OUT", Aliases: []string{"output", "format"}, Description: "Output format", Category: CategoryUniversal},
	{Tag: "summary", Token: "SUM", Aliases: []string{"summarize"}, Description: "Summarize or list top N", Category: CategoryUniversal},
	{Tag: "generate", Token: "GEN", Aliases: []string{"create", "produce"}, Description: "Generate content", Category: CategoryUniversal},
	{Tag: "evaluate", Token: "EVAL", Aliases: []string{"assess", "analyze"}, Description: "Evaluate or critique", Category: CategoryUniversal},
	{Tag: "reasoning", Token: "THINK", Aliases: []string{"reason", "think"}, Description: "Step-by-step reasoning mode", Category: CategoryUniversal},
	{Tag: "visualization", Token: "VIS", Aliases: []string{"visualize", "diagram"}, Description: "Request visualization or chart", Category: CategoryUniversal},
	{Tag: "length", Token: "LEN", Description: "Length constraint (words or tokens)", Category: CategoryUniversal},
	{Tag: "language", Token: "LANG", Aliases: []string{"lang"}, Description: "Language specification", Category: CategoryUniversal},
	{Tag: "format requirements", Token: "FMT", Description: "Exact format requirements", Category: CategoryUniversal},
	{Tag: "quality", Token: "QUAL", Description: "Quality level: draft, normal, high, best", Category: CategoryUniversal},
	{Tag: "style", Token: "STYLE", Description: "Style, tone, or mood", Category: CategoryUniversal},

	// Code generation
	{Tag: "framework", Token: "FRAMEWORK", Description: "Framework: Django, FastAPI, React, ...", Category: CategoryCode},
	{Tag: "design pattern", Token: "PATTERN", Description: "Pattern: MVC, OOP, FP, Async, ...", Category: CategoryCode},
	{Tag: "artifact type", Token: "TYPE", Description: "Function, Class, Module, API, CLI, ...", Category: CategoryCode},
	{Tag: "feature", Token: "FEATURE", Description: "Feature: Auth, Caching, Logging, Testing, ...", Category: CategoryCode},
	{Tag: "performance target", Token: "PERF", Description: "Optimize for speed, memory, readability, security", Category: CategoryCode},
	{Tag: "documentation", Token: "DOC", Description: "Include docstring, type hints, comments, examples", Category: CategoryCode},
	{Tag: "testing", Token: "TEST", Description: "Unit, integration, E2E, load, security tests", Category: CategoryCode},
	{Tag: "error handling", Token: "ERR", Description: "Error handling strategy", Category: CategoryCode},
	{Tag: "architecture", Token: "ARCH", Description: "Monolithic, microservices, serverless, ...", Category: CategoryCode},

	// Image generation
	{Tag: "subject", Token: "SUBJECT", Description: "Main subject description", Category: CategoryImage},
	{Tag: "framing", Token: "BODY", Description: "Full-body, bust, headshot, landscape, ...", Category: CategoryImage},
	{Tag: "pose", Token: "POSE", Description: "Standing, sitting, dynamic, profile, ...", Category: CategoryImage},
	{Tag: "mood", Token: "MOOD", Description: "Cheerful, dark, dramatic, serene, ...", Category: CategoryImage},
	{Tag: "lighting", Token: "LIGHTING", Description: "Soft, hard, dramatic, backlit, golden-hour", Category: CategoryImage},
	{Tag: "background", Token: "BG", Description: "None, blurred, detailed, natural, urban", Category: CategoryImage},
	{Tag: "color scheme", Token: "COLORS", Description: "Warm, cool, muted, vibrant, B&W", Category: CategoryImage},
	{Tag: "composition", Token: "COMPOSITION", Description: "Rule-of-thirds, centered, symmetrical, ...", Category: CategoryImage},
	{Tag: "aspect ratio", Token: "RATIO", Description: "1:1, 16:9, 9:16, 2:3, 3:2", Category: CategoryImage},
	{Tag: "filter", Token: "FILTER", Description: "Vintage, noir, HDR, cinematic, watercolor", Category: CategoryImage},
	{Tag: "detail level", Token: "DETAIL", Description: "Low, medium, high, ultra-detailed", Category: CategoryImage},

	// Video generation
	{Tag: "duration", Token: "DURATION", Description: "Length in seconds or minutes", Category: CategoryVideo},
	{Tag: "frame rate", Token: "FPS", Description: "24, 30, or 60 fps", Category: CategoryVideo},
	{Tag: "motion", Token: "MOTION", Description: "Pan, zoom, rotate, track, static", Category: CategoryVideo},
	{Tag: "transition", Token: "TRANSITION", Description: "Cut, fade, dissolve, slide, wipe", Category: CategoryVideo},
	{Tag: "effect", Token: "EFFECT", Description: "Blur, glow, particle, distortion, ...", Category: CategoryVideo},
	{Tag: "music", Token: "MUSIC", Description: "Upbeat, calm, epic, ambient, custom", Category: CategoryVideo},
	{Tag: "narration", Token: "NARRATION", Description: "Narrator voice, age, accent, tone", Category: CategoryVideo},
	{Tag: "scenes", Token: "SCENE", Description: "Number of scenes or cuts", Category: CategoryVideo},
	{Tag: "playback speed", Token: "SPEED", Description: "Slow-mo, normal, time-lapse", Category: CategoryVideo},
	{Tag: "behavior", Token: "BEHAVIOR", Description: "Idle, walking, talking, interacting", Category: CategoryVideo},

	// Audio generation
	{Tag: "genre", Token: "GENRE", Description: "Pop, rock, jazz, classical, ambient, ...", Category: CategoryAudio},
	{Tag: "tempo", Token: "TEMPO", Description: "BPM range: slow, medium, fast", Category: CategoryAudio},
	{Tag: "instruments", Token: "INSTRUMENT", Description: "Piano, guitar, violin, drums, synth", Category: CategoryAudio},
	{Tag: "voice", Token: "VOICE", Description: "Voice type: male, female, chorus, narrator", Category: CategoryAudio},
	{Tag: "accent", Token: "ACCENT", Description: "Accent or language variant", Category: CategoryAudio},
	{Tag: "production style", Token: "PRODUCTION", Description: "Raw, produced, mixed, mastered", Category: CategoryAudio},

	// Writing
	{Tag: "tone", Token: "TONE", Description: "Formal, casual, academic, journalistic", Category: CategoryWriting},
	{Tag: "audience", Token: "AUDIENCE", Description: "Children, teens, adults, experts, general", Category: CategoryWriting},
	{Tag: "point of view", Token: "POV", Description: "First, second, third, omniscient", Category: CategoryWriting},
	{Tag: "tense", Token: "TENSE", Description: "Past, present, future, mixed", Category: CategoryWriting},
	{Tag: "structure", Token: "STRUCTURE", Description: "Linear, chronological, thematic", Category: CategoryWriting},
	{Tag: "emotional tone", Token: "EMOTION", Description: "Humorous, serious, inspiring, dark", Category: CategoryWriting},
	{Tag: "dialect", Token: "DIALECT", Description: "Standard, colloquial, formal, regional", Category: CategoryWriting},

	// Analysis
	{Tag: "analysis method", Token: "METHOD", Description: "Statistical, comparative, causal, predictive", Category: CategoryAnalysis},
	{Tag: "data type", Token: "DATA", Description: "Quantitative, qualitative, time-series", Category: CategoryAnalysis},
	{Tag: "scope", Token: "SCOPE", Description: "Micro, macro, local, global, industry", Category: CategoryAnalysis},
	{Tag: "depth", Token: "DEPTH", Description: "Surface, moderate, deep, comprehensive", Category: CategoryAnalysis},
	{Tag: "focus area", Token: "FOCUS", Description: "Market, technology, finance, social", Category: CategoryAnalysis},
	{Tag: "bias stance", Token: "BIAS", Description: "Neutral, pro, critical, devil's advocate", Category: CategoryAnalysis},
	{Tag: "evidence level", Token: "EVIDENCE", Description: "High, medium, cited sources, expert opinion", Category: CategoryAnalysis},
	{Tag: "timeline", Token: "TIMELINE", Description: "Historical, current, projected, comparative", Category: CategoryAnalysis},
}

// Lookup indexes, built once at init.
var (
	byTag   map[string]Entry // normalized tag or alias -> entry
	byToken map[string]Entry // upper-case token -> entry
)

func init() {
	byTag = make(map[string]Entry, len(entries)*2)
	byToken = make(map[string]Entry, len(entries))

	// Canonical tags and tokens first so an alias can never shadow a tag.
	for _, e := range entries {
		tag := Normalize(e.Tag)
		if _, dup := byTag[tag]; dup {
			panic("dict: duplicate tag " + e.Tag)
		}
		byTag[tag] = e
		if _, dup := byToken[e.Token]; dup {
			panic("dict: duplicate token " + e.Token)
		}
		byToken[e.Token] = e
	}

	for _, e := range entries {
		for _, a := range e.Aliases {
			alias := Normalize(a)
			if _, dup := byTag[alias]; dup {
				panic("dict: alias collides with a tag: " + a)
			}
			byTag[alias] = e
		}
	}
}

// whitespaceRegex matches one or more whitespace characters.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize lowercases, trims, and collapses internal whitespace.
// Used for case-insensitive tag lookups.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// LookupToken returns the operator token for a canonical tag or alias.
// Lookup is case-insensitive. Fails with UNKNOWN_OPERATOR on a miss.
func LookupToken(tag string) (string, error) {
	e, ok := byTag[Normalize(tag)]
	if !ok {
		return "", errors.NewUnknownOperator(tag)
	}
	return e.Token, nil
}

// LookupTag returns the canonical tag for an operator token.
// A trailing colon is accepted ("ACT:" and "ACT" resolve alike); the token
// itself is matched case-sensitively since tokens are always emitted
// upper-case. Fails with UNKNOWN_OPERATOR on a miss.
func LookupTag(token string) (string, error) {
	e, ok := byToken[strings.TrimSuffix(strings.TrimSpace(token), ":")]
	if !ok {
		return "", errors.NewUnknownOperator(token)
	}
	return e.Tag, nil
}

// Get returns the full entry for a token, if any.
func Get(token string) (Entry, bool) {
	e, ok := byToken[strings.TrimSuffix(strings.TrimSpace(token), ":")]
	return e, ok
}

// Entries returns all operators in display order.
// The returned slice is a copy; the table itself is immutable.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// EntriesByCategory returns the operators belonging to one category,
// in display order.
func EntriesByCategory(c Category) []Entry {
	out := make([]Entry, 0, 16)
	for _, e := range entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}
