// Package taxonomy holds the fixed SAT Reading and Writing domain/skill
// classification table and the token-containment matcher used to classify
// noisy OCR header text against it.
package taxonomy

import (
	"strings"
)

// Difficulty levels as stored. Raw source codes E/M/H map 1:1.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// difficultyCodes maps the single-letter codes used by the question viewer.
var difficultyCodes = map[string]string{
	"E": DifficultyEasy,
	"M": DifficultyMedium,
	"H": DifficultyHard,
}

// MapDifficulty expands a raw difficulty code. Unknown input is returned
// unchanged so already-expanded values pass through.
func MapDifficulty(raw string) string {
	if full, ok := difficultyCodes[raw]; ok {
		return full
	}
	return raw
}

// Domain is one subject area with its tested skills.
type Domain struct {
	Name   string
	Skills []string
}

// Domains is the full two-level classification table. Order matters: the
// classifier takes the first domain whose every name token appears in the
// candidate text.
var Domains = []Domain{
	{
		Name: "Information and Ideas",
		Skills: []string{
			"Central Ideas and Details",
			"Command of Evidence",
			"Inferences",
		},
	},
	{
		Name: "Craft and Structure",
		Skills: []string{
			"Words in Context",
			"Text Structure and Purpose",
			"Cross-Text Connections",
		},
	},
	{
		Name: "Expression of Ideas",
		Skills: []string{
			"Rhetorical Synthesis",
			"Transitions",
		},
	},
	{
		Name: "Standard English Conventions",
		Skills: []string{
			"Boundaries",
			"Form, Structure, and Sense",
		},
	},
}

// Command of Evidence splits into two sub-variants that the OCR text never
// labels explicitly; see SubclassifyEvidence.
const (
	SkillCommandOfEvidence = "Command of Evidence"
	SkillEvidenceTextual   = "Command of Evidence (Textual)"
	SkillEvidenceQuant     = "Command of Evidence (Quantitative)"
)

// evidenceWindowSize and evidenceNewlineThreshold are calibrated constants.
// A data table OCRs into many short lines, so line density inside the window
// after the "ID: <qid>" marker is the only available structural signal.
const (
	evidenceWindowSize       = 250
	evidenceNewlineThreshold = 15
)

// tokenize lowercases s, strips parentheses/hyphens/commas, and returns the
// whole-word token set.
func tokenize(s string) map[string]bool {
	cleaned := strings.NewReplacer("(", " ", ")", " ", "-", " ", ",", " ").Replace(strings.ToLower(s))
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(cleaned) {
		tokens[w] = true
	}
	return tokens
}

// containsAllWords reports whether every word of name appears as a token in
// the candidate token set, order-insensitive.
func containsAllWords(tokens map[string]bool, name string) bool {
	for _, w := range strings.Fields(strings.NewReplacer("(", " ", ")", " ", "-", " ", ",", " ").Replace(strings.ToLower(name))) {
		if !tokens[w] {
			return false
		}
	}
	return true
}

// Classify matches the domain region of an OCR header against the table.
// A domain matches when every word of its name appears in the region; its
// skills are then tested the same way. Both results may be empty when the
// region is too garbled to match anything.
func Classify(region string) (domain, skill string) {
	tokens := tokenize(region)
	for _, d := range Domains {
		if !containsAllWords(tokens, d.Name) {
			continue
		}
		domain = d.Name
		for _, s := range d.Skills {
			if containsAllWords(tokens, s) {
				skill = s
				break
			}
		}
		return domain, skill
	}
	return "", ""
}

// SubclassifyEvidence resolves the Command of Evidence sub-variant from the
// text window following the "ID: <qid>" marker. Strictly more than 15
// newlines in the first 250 characters means a table-heavy quantitative item;
// exactly 15 stays Textual.
func SubclassifyEvidence(afterID string) string {
	window := afterID
	if len(window) > evidenceWindowSize {
		window = window[:evidenceWindowSize]
	}
	if strings.Count(window, "\n") > evidenceNewlineThreshold {
		return SkillEvidenceQuant
	}
	return SkillEvidenceTextual
}
