// Package record defines the canonical question record produced by every
// extractor and the required-field contract enforced before import.
package record

import (
	"fmt"
	"strings"
)

// ChoiceLetters are the valid correct-choice values, in option order.
// Option position is identity: answer_options[0] is choice A.
var ChoiceLetters = []string{"A", "B", "C", "D"}

// QuestionRecord is the unit produced by the HTML and OCR extractors.
// A record is assembled best-effort, validated once, and then either
// imported exactly once (matched by QuestionID) or discarded — never
// merged with a later extraction of the same question.
type QuestionRecord struct {
	QuestionID    string            `json:"question_id"`
	Domain        string            `json:"domain"`
	Skill         string            `json:"skill"`
	Difficulty    string            `json:"difficulty"`
	Passage       string            `json:"passage"`
	QuestionText  string            `json:"question_text"`
	AnswerOptions []string          `json:"answer_options"`
	CorrectChoice string            `json:"correct_answer"`
	Rationales    map[string]string `json:"answer_rationales"`
	HasImage      bool              `json:"has_image"`
}

// ValidationError carries the first failing rule's reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate enforces the record contract. Checks run in order and stop at the
// first failure; the returned error names the failing rule only.
func Validate(r *QuestionRecord) error {
	if r.QuestionID == "" {
		return &ValidationError{Reason: "missing required field: question_id"}
	}
	if r.QuestionText == "" {
		return &ValidationError{Reason: "missing required field: question_text"}
	}
	if r.AnswerOptions == nil {
		return &ValidationError{Reason: "missing required field: answer_options"}
	}
	if r.CorrectChoice == "" {
		return &ValidationError{Reason: "missing required field: correct_answer"}
	}
	if len(r.AnswerOptions) != 4 {
		return &ValidationError{Reason: fmt.Sprintf("answer_options must have exactly 4 elements, got %d", len(r.AnswerOptions))}
	}
	if !isChoiceLetter(r.CorrectChoice) {
		return &ValidationError{Reason: fmt.Sprintf("correct_answer must be A, B, C, or D, got: %s", r.CorrectChoice)}
	}
	if strings.TrimSpace(r.QuestionText) == "" {
		return &ValidationError{Reason: "question_text cannot be empty"}
	}
	for i, opt := range r.AnswerOptions {
		if strings.TrimSpace(opt) == "" {
			return &ValidationError{Reason: fmt.Sprintf("answer_options[%d] cannot be empty", i)}
		}
	}
	return nil
}

func isChoiceLetter(s string) bool {
	for _, l := range ChoiceLetters {
		if s == l {
			return true
		}
	}
	return false
}
