package record

import (
	"strings"
	"testing"
)

func valid() *QuestionRecord {
	return &QuestionRecord{
		QuestionID:    "00e0170f",
		Domain:        "Information and Ideas",
		Skill:         "Inferences",
		Difficulty:    "Medium",
		QuestionText:  "Which choice most logically completes the text?",
		AnswerOptions: []string{"one", "two", "three", "four"},
		CorrectChoice: "B",
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	r := valid()
	r.QuestionID = ""
	r.CorrectChoice = "Z"
	err := Validate(r)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "question_id") {
		t.Errorf("expected question_id failure first, got %q", err)
	}
}

func TestValidateChoiceCount(t *testing.T) {
	for _, n := range []int{0, 3, 5} {
		r := valid()
		r.AnswerOptions = make([]string, n)
		for i := range r.AnswerOptions {
			r.AnswerOptions[i] = "x"
		}
		if n == 0 {
			r.AnswerOptions = []string{}
		}
		err := Validate(r)
		if err == nil {
			t.Fatalf("Validate with %d options should fail", n)
		}
		if !strings.Contains(err.Error(), "exactly 4") {
			t.Errorf("%d options: unexpected reason %q", n, err)
		}
	}
}

func TestValidateCorrectChoiceRange(t *testing.T) {
	r := valid()
	r.CorrectChoice = "E"
	err := Validate(r)
	if err == nil || !strings.Contains(err.Error(), "must be A, B, C, or D") {
		t.Errorf("got %v", err)
	}
}

func TestValidateBlankQuestionText(t *testing.T) {
	r := valid()
	r.QuestionText = "   "
	err := Validate(r)
	if err == nil || !strings.Contains(err.Error(), "question_text cannot be empty") {
		t.Errorf("got %v", err)
	}
}

func TestValidateBlankOption(t *testing.T) {
	r := valid()
	r.AnswerOptions[2] = " \t"
	err := Validate(r)
	if err == nil || !strings.Contains(err.Error(), "answer_options[2]") {
		t.Errorf("got %v", err)
	}
}
