package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/lintahlo/potential-backend/internal/record"
)

// FilterAny is the wildcard filter value meaning "no constraint".
const FilterAny = "Any"

// Question is a stored SAT question. Choices and rationales are flattened one
// column each; option position is identity (choice_a is answer "A").
type Question struct {
	ID           uuid.UUID `json:"id"`
	QuestionID   string    `json:"question_id"`
	Domain       string    `json:"domain"`
	Skill        string    `json:"skill"`
	Difficulty   string    `json:"difficulty"`
	Passage      string    `json:"passage"`
	QuestionText string    `json:"question_text"`

	ChoiceA string `json:"choice_a"`
	ChoiceB string `json:"choice_b"`
	ChoiceC string `json:"choice_c"`
	ChoiceD string `json:"choice_d"`

	CorrectAnswer string `json:"correct_answer"`

	RationaleA string `json:"rationale_a,omitempty"`
	RationaleB string `json:"rationale_b,omitempty"`
	RationaleC string `json:"rationale_c,omitempty"`
	RationaleD string `json:"rationale_d,omitempty"`

	HasImage  bool      `json:"has_image"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestionFilter narrows question queries. Empty or "Any" fields match
// everything.
type QuestionFilter struct {
	Domain     string
	Skill      string
	Difficulty string
	Limit      int
	Offset     int
}

// FilterValues are the distinct values available for each filter dimension.
type FilterValues struct {
	Domains      []string `json:"domains"`
	Skills       []string `json:"skills"`
	Difficulties []string `json:"difficulties"`
}

// CreateQuestionRequest is the admin payload for adding a question manually.
type CreateQuestionRequest struct {
	QuestionID    string            `json:"question_id" binding:"required,max=64"`
	Domain        string            `json:"domain" binding:"required,max=100"`
	Skill         string            `json:"skill" binding:"required,max=100"`
	Difficulty    string            `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	Passage       string            `json:"passage"`
	QuestionText  string            `json:"question_text" binding:"required"`
	AnswerOptions []string          `json:"answer_options" binding:"required,len=4"`
	CorrectAnswer string            `json:"correct_answer" binding:"required,oneof=A B C D"`
	Rationales    map[string]string `json:"answer_rationales"`
}

// ToRecord converts the request into the extraction record shape so the same
// contract guards manual creation and bulk import.
func (r *CreateQuestionRequest) ToRecord() *record.QuestionRecord {
	return &record.QuestionRecord{
		QuestionID:    r.QuestionID,
		Domain:        r.Domain,
		Skill:         r.Skill,
		Difficulty:    r.Difficulty,
		Passage:       r.Passage,
		QuestionText:  r.QuestionText,
		AnswerOptions: r.AnswerOptions,
		CorrectChoice: r.CorrectAnswer,
		Rationales:    r.Rationales,
	}
}
