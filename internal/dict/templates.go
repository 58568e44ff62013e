package dict

import (
	"regexp"
	"sort"
	"strings"
)

// Template is a reusable L-ZIP skeleton with {PLACEHOLDER} slots.
type Template struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// templates is the fixed template table.
var templates = []Template{
	{
		Name:        "code_review",
		Description: "Review a code block and propose fixes",
		Body:        "ACT:Senior_Dev [Lang:{LANG}] CTX:[Code_Block] OBJ:Review_Code | Find_Issues | Suggest_Improvements GEN:Fixed_Code THINK:StepByStep",
	},
	{
		Name:        "content_creation",
		Description: "Draft written content for a target audience",
		Body:        "ACT:Writer OBJ:Create_{TYPE} [Topic:{TOPIC}] @{AUDIENCE} LIM:{STYLE} LEN:{LENGTH} OUT:Draft",
	},
	{
		Name:        "data_analysis",
		Description: "Analyze a dataset and report key insights",
		Body:        "ACT:DataScientist CTX:[Dataset] OBJ:Analyze_Data SUM:Top5_Insights EVAL:Statistical_Significance OUT:Report+Charts",
	},
	{
		Name:        "debugging",
		Description: "Root-cause an error from logs",
		Body:        "ACT:DevOps [Service:{SERVICE}] CTX:[Error_Log] OBJ:Find_Root_Cause => Fix THINK:StepByStep OUT:Solution+Prevention",
	},
	{
		Name:        "meeting_summary",
		Description: "Distill a transcript into decisions and actions",
		Body:        "ACT:Executive CTX:[Meeting_Transcript] OBJ:Summarize SUM:Key_Decisions+Action_Items OUT:Bullets",
	},
	{
		Name:        "strategy_planning",
		Description: "Produce a plan with timeline and budget",
		Body:        "ACT:Strategist OBJ:Create_Plan [Goal:{GOAL}] @{TIMEFRAME} LIM:{CONSTRAINTS} CTX:{CONTEXT} OUT:Timeline+Milestones+Budget",
	},
}

// placeholderRegex matches {PLACEHOLDER} slots in template bodies.
var placeholderRegex = regexp.MustCompile(`\{([A-Z][A-Z0-9_]*)\}`)

// Templates returns all templates in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// GetTemplate returns the template with the given name.
func GetTemplate(name string) (Template, bool) {
	name = Normalize(name)
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Placeholders lists the distinct {SLOT} names in a template body, sorted.
func (t Template) Placeholders() []string {
	seen := make(map[string]bool)
	for _, m := range placeholderRegex.FindAllStringSubmatch(t.Body, -1) {
		seen[m[1]] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Fill substitutes placeholder values into the template body.
// Keys are matched upper-case; unfilled slots remain verbatim so the
// caller can see what is still missing.
func (t Template) Fill(values map[string]string) string {
	if len(values) == 0 {
		return t.Body
	}
	upper := make(map[string]string, len(values))
	for k, v := range values {
		upper[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return placeholderRegex.ReplaceAllStringFunc(t.Body, func(slot string) string {
		name := slot[1 : len(slot)-1]
		if v, ok := upper[name]; ok && v != "" {
			return strings.ReplaceAll(strings.TrimSpace(v), " ", "_")
		}
		return slot
	})
}
