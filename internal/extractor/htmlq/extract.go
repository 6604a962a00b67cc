// Package htmlq extracts question records from rendered pages of the
// third-party question viewer. The page embeds the question as a JSON object
// assigned to a script variable; everything else is presentation markup.
package htmlq

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lintahlo/potential-backend/internal/record"
	"github.com/lintahlo/potential-backend/internal/taxonomy"
	"github.com/lintahlo/potential-backend/internal/textutil"
)

// Terminal reject reasons. None of these are retried: NotFound and HasImage
// are expected policy rejections, the other two mean the page layout changed.
var (
	ErrNotFound          = errors.New("question not found")
	ErrMalformedDocument = errors.New("could not find question data in document")
	ErrInvalidPayload    = errors.New("invalid question payload")
	ErrHasImage          = errors.New("question contains a figure")
)

const notFoundSentinel = "Question not found"

var (
	questionObjectPattern = regexp.MustCompile(`(?s)let question = ({.*?});`)
	correctAnswerPattern  = regexp.MustCompile(`<span class="font-bold">Correct Answer:\s*</span>\s*<span>([A-D])</span>`)
	rationaleSplitPattern = regexp.MustCompile(`(Choice [A-D] is (?:the best answer|correct|incorrect))`)
	choiceLetterPattern   = regexp.MustCompile(`Choice ([A-D])`)
)

// payload mirrors the embedded JSON object's consumed fields.
type payload struct {
	QuestionID string  `json:"questionId"`
	Domain     string  `json:"primary_class_cd_desc"`
	Skill      string  `json:"skill_desc"`
	Difficulty string  `json:"difficulty"`
	Content    content `json:"content"`
}

type content struct {
	Stem          string         `json:"stem"`
	Stimulus      string         `json:"stimulus"`
	AnswerOptions []answerOption `json:"answerOptions"`
	Rationale     string         `json:"rationale"`
}

type answerOption struct {
	Content string `json:"content"`
}

// Extract parses one downloaded viewer page into an unvalidated question
// record. Validation is a separate downstream step; Extract only rejects
// pages it cannot read at all or that fall outside policy (image-bearing,
// not-found).
func Extract(html string) (*record.QuestionRecord, error) {
	if strings.Contains(html, notFoundSentinel) {
		return nil, ErrNotFound
	}

	m := questionObjectPattern.FindStringSubmatch(html)
	if m == nil {
		return nil, ErrMalformedDocument
	}

	var p payload
	if err := json.Unmarshal([]byte(m[1]), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	// Figures never survive text extraction; reject rather than emit a
	// partial record.
	if strings.Contains(p.Content.Stem, "figure") || strings.Contains(p.Content.Stimulus, "figure") {
		return nil, ErrHasImage
	}

	options := make([]string, 0, len(p.Content.AnswerOptions))
	for _, opt := range p.Content.AnswerOptions {
		options = append(options, textutil.Normalize(opt.Content))
	}

	return &record.QuestionRecord{
		QuestionID:    p.QuestionID,
		Domain:        p.Domain,
		Skill:         p.Skill,
		Difficulty:    taxonomy.MapDifficulty(p.Difficulty),
		Passage:       extractPassage(html),
		QuestionText:  textutil.Normalize(p.Content.Stem),
		AnswerOptions: options,
		CorrectChoice: extractCorrectAnswer(html),
		Rationales:    extractRationales(p.Content.Rationale),
	}, nil
}

// extractCorrectAnswer reads the bold-label answer span from the rendered
// page. An absent span yields "" — the validator rejects the record later,
// which keeps all accept/reject decisions in one place.
func extractCorrectAnswer(html string) string {
	if m := correctAnswerPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

// extractRationales splits the rationale blob into per-choice explanations.
// Each "Choice X is ..." header opens a section running to the next header.
func extractRationales(rationaleHTML string) map[string]string {
	if rationaleHTML == "" {
		return map[string]string{}
	}

	clean := textutil.Normalize(rationaleHTML)
	sections := rationaleSplitPattern.Split(clean, -1)
	headers := rationaleSplitPattern.FindAllString(clean, -1)

	rationales := make(map[string]string)
	for i, header := range headers {
		letter := choiceLetterPattern.FindStringSubmatch(header)
		if letter == nil {
			continue
		}
		body := ""
		if i+1 < len(sections) {
			body = sections[i+1]
		}
		rationales[letter[1]] = textutil.CollapseSpace(header + body)
	}
	return rationales
}
