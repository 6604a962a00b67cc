package taxonomy

import (
	"strings"
	"testing"
)

func TestClassifyAllDomainsAndSkills(t *testing.T) {
	for _, d := range Domains {
		for _, s := range d.Skills {
			// Simulate a garbled OCR header that still carries every token.
			region := "SAT Reading and Writing " + strings.ToUpper(d.Name) + " rT. BBO " + s + " Medium"
			domain, skill := Classify(region)
			if domain != d.Name {
				t.Errorf("Classify(%q) domain = %q, want %q", region, domain, d.Name)
			}
			if skill != s {
				t.Errorf("Classify(%q) skill = %q, want %q", region, skill, s)
			}
		}
	}
}

func TestClassifyMissingTokenNoMatch(t *testing.T) {
	// "Ideas" alone must not match "Information and Ideas".
	domain, skill := Classify("Ideas Medium")
	if domain != "" || skill != "" {
		t.Errorf("Classify = (%q, %q), want empty", domain, skill)
	}
}

func TestClassifyDomainWithoutSkill(t *testing.T) {
	domain, skill := Classify("Craft and Structure gibberish")
	if domain != "Craft and Structure" {
		t.Errorf("domain = %q", domain)
	}
	if skill != "" {
		t.Errorf("skill = %q, want empty", skill)
	}
}

func TestClassifyHyphenAndParenStripping(t *testing.T) {
	domain, skill := Classify("Craft and Structure Cross Text Connections")
	if domain != "Craft and Structure" || skill != "Cross-Text Connections" {
		t.Errorf("got (%q, %q)", domain, skill)
	}
}

func TestSubclassifyEvidence(t *testing.T) {
	cases := []struct {
		name     string
		newlines int
		want     string
	}{
		{"prose", 3, SkillEvidenceTextual},
		{"boundary", 15, SkillEvidenceTextual},
		{"table", 16, SkillEvidenceQuant},
		{"dense table", 40, SkillEvidenceQuant},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			window := strings.Repeat("cell\n", c.newlines) + strings.Repeat("x", 400)
			if got := SubclassifyEvidence(window); got != c.want {
				t.Errorf("SubclassifyEvidence with %d newlines = %q, want %q", c.newlines, got, c.want)
			}
		})
	}
}

func TestSubclassifyEvidenceWindowBound(t *testing.T) {
	// Newlines beyond the 250-char window must not count.
	window := strings.Repeat("x", 250) + strings.Repeat("\n", 40)
	if got := SubclassifyEvidence(window); got != SkillEvidenceTextual {
		t.Errorf("newlines outside window counted: %q", got)
	}
}

func TestMapDifficulty(t *testing.T) {
	if got := MapDifficulty("E"); got != DifficultyEasy {
		t.Errorf("MapDifficulty(E) = %q", got)
	}
	if got := MapDifficulty("Hard"); got != "Hard" {
		t.Errorf("MapDifficulty(Hard) = %q", got)
	}
}
