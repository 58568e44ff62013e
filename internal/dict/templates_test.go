package dict

import (
	"strings"
	"testing"
)

func TestGetTemplate(t *testing.T) {
	tmpl, ok := GetTemplate("code_review")
	if !ok {
		t.Fatal("code_review template missing")
	}
	if tmpl.Name != "code_review" {
		t.Errorf("Name = %q", tmpl.Name)
	}
	if tmpl.Body == "" {
		t.Error("Body is empty")
	}

	// Case-insensitive
	if _, ok := GetTemplate("CODE_REVIEW"); !ok {
		t.Error("lookup should be case-insensitive")
	}

	if _, ok := GetTemplate("nope"); ok {
		t.Error("unknown template should not resolve")
	}
}

func TestTemplate_Placeholders(t *testing.T) {
	tmpl := Template{Body: "ACT:{ROLE} OBJ:{TASK} [Goal:{TASK}]"}
	got := tmpl.Placeholders()
	want := []string{"ROLE", "TASK"}
	if len(got) != len(want) {
		t.Fatalf("Placeholders() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Placeholders()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTemplate_Fill(t *testing.T) {
	tmpl := Template{Body: "ACT:{ROLE} OBJ:{TASK}"}

	filled := tmpl.Fill(map[string]string{"role": "Senior Dev"})
	if !strings.Contains(filled, "ACT:Senior_Dev") {
		t.Errorf("spaces should become underscores: %q", filled)
	}
	if !strings.Contains(filled, "{TASK}") {
		t.Errorf("unfilled slot should stay verbatim: %q", filled)
	}

	// No values: body unchanged
	if tmpl.Fill(nil) != tmpl.Body {
		t.Error("Fill(nil) should return the body unchanged")
	}
}

func TestTemplates_AllValid(t *testing.T) {
	if len(Templates()) == 0 {
		t.Fatal("no templates")
	}
	for _, tmpl := range Templates() {
		if tmpl.Name == "" || tmpl.Description == "" || tmpl.Body == "" {
			t.Errorf("template %+v has empty fields", tmpl)
		}
		if tmpl.Name != Normalize(tmpl.Name) {
			t.Errorf("template name %q is not normalized", tmpl.Name)
		}
	}
}
