package ocr

import (
	"strings"
	"testing"

	"github.com/lintahlo/potential-backend/internal/record"
	"github.com/lintahlo/potential-backend/internal/taxonomy"
)

const sampleBlock = `Question ID abc123

Assessment Test Domain Skill Difficulty
SAT Reading and Writing Information and Ideas Inferences Medium

ID: abc123

In a decades-long study of alpine glaciers, researchers measured the volume of
meltwater released each spring and compared it with the depth of the preceding
winter snowpack across twelve drainage basins.

Based on the text, what can be inferred about the annual meltwater volume?

A. It increased steadily over the study period.
B. It varied with the depth of the winter snowpack.
C. It declined sharply after the first decade.
D. It remained constant across all basins.

ID: abc123 Answer

Correct Answer: B

Rationale

Choice A is incorrect because no steady increase is described in the study.

Choice B is the best answer because the study ties meltwater volume to
snowpack depth.

Question Difficulty: Medium`

const quantBlock = `Question ID qd17

Assessment Test Domain Skill Difficulty
SAT Reading and Writing Information and Ideas Command of Evidence Medium

ID: qd17

Year
1990
12
19
1991
14
22
1992
15
24
1993
11
18
1994
16
25
1995
13
21

Which choice best describes data from the table that support the conclusion?

A. Colony A grew faster.
B. Colony B grew faster.
C. Both colonies shrank.
D. Neither colony changed.

ID: qd17 Answer

Correct Answer: B

Rationale

Choice B is the best answer because the table shows larger counts for B.

Question Difficulty: Hard`

func TestParseBlockRoundTrip(t *testing.T) {
	blocks := SegmentText(sampleBlock)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	rec := ParseBlock(blocks[0])

	if rec.QuestionID != "abc123" {
		t.Errorf("QuestionID = %q", rec.QuestionID)
	}
	if rec.Domain != "Information and Ideas" || rec.Skill != "Inferences" {
		t.Errorf("classification = (%q, %q)", rec.Domain, rec.Skill)
	}
	if rec.Difficulty != "Medium" {
		t.Errorf("Difficulty = %q", rec.Difficulty)
	}
	if !strings.Contains(rec.Passage, "twelve drainage basins") {
		t.Errorf("Passage = %q", rec.Passage)
	}
	if rec.QuestionText != "Based on the text, what can be inferred about the annual meltwater volume?" {
		t.Errorf("QuestionText = %q", rec.QuestionText)
	}
	if len(rec.AnswerOptions) != 4 {
		t.Fatalf("AnswerOptions = %v", rec.AnswerOptions)
	}
	for i, opt := range rec.AnswerOptions {
		if strings.TrimSpace(opt) == "" {
			t.Errorf("AnswerOptions[%d] empty", i)
		}
	}
	if rec.AnswerOptions[3] != "It remained constant across all basins." {
		t.Errorf("AnswerOptions[3] = %q", rec.AnswerOptions[3])
	}
	if rec.CorrectChoice != "B" {
		t.Errorf("CorrectChoice = %q", rec.CorrectChoice)
	}
	if len(rec.Rationales) != 2 || rec.Rationales["A"] == "" || rec.Rationales["B"] == "" {
		t.Errorf("Rationales = %v", rec.Rationales)
	}
	if !strings.HasPrefix(rec.Rationales["B"], "Choice B is the best answer") {
		t.Errorf("Rationales[B] = %q", rec.Rationales["B"])
	}

	// The assembled record must clear the import contract.
	if err := record.Validate(rec); err != nil {
		t.Errorf("Validate(round-trip record) = %v", err)
	}
}

func TestQuantitativeEvidenceBlock(t *testing.T) {
	blocks := SegmentText(quantBlock)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	rec := ParseBlock(blocks[0])

	if rec.Skill != taxonomy.SkillEvidenceQuant {
		t.Errorf("Skill = %q, want quantitative evidence", rec.Skill)
	}
	if rec.QuestionText != "Which choice best describes data from the table that support the conclusion?" {
		t.Errorf("QuestionText = %q", rec.QuestionText)
	}
	if rec.Difficulty != "Hard" {
		t.Errorf("Difficulty = %q", rec.Difficulty)
	}
	if len(rec.AnswerOptions) != 4 {
		t.Errorf("AnswerOptions = %v", rec.AnswerOptions)
	}
}

func TestExtractQuestionID(t *testing.T) {
	if got := ExtractQuestionID(sampleBlock); got != "abc123" {
		t.Errorf("got %q", got)
	}
	if got := ExtractQuestionID("no marker here"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestExtractDifficultyEmptyBlock(t *testing.T) {
	if got := ExtractDifficulty("   "); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExtractCorrectAnswerMissing(t *testing.T) {
	if got := ExtractCorrectAnswer("no key here"); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDomainSkillUnclassifiable(t *testing.T) {
	domain, skill := ExtractDomainSkill("Difficulty garbled text ID: x", "x")
	if domain != "" || skill != "" {
		t.Errorf("got (%q, %q), want empty", domain, skill)
	}
}

func TestPassagePrimaryHeuristic(t *testing.T) {
	// Block where segment index 2 is a real passage (no separate ID line).
	block := strings.Join([]string{
		"Question ID p1",
		"",
		"Assessment Test Domain Skill Difficulty",
		"",
		"The committee reviewed the proposal over several weeks before voting.",
		"",
		"Which choice is correct?",
	}, "\n")
	got := ExtractPassage(block)
	if got != "The committee reviewed the proposal over several weeks before voting." {
		t.Errorf("got %q", got)
	}
}

func TestPassageCandidateRejectedWhenShort(t *testing.T) {
	block := strings.Join([]string{
		"Question ID p2",
		"",
		"header",
		"",
		"tiny fragment",
		"",
		"Which choice is correct?",
	}, "\n")
	// Primary candidate "tiny fragment" is under the length floor; the cue
	// fallback then takes everything before "Which choice" minus boilerplate.
	got := ExtractPassage(block)
	if strings.Contains(got, "Which choice") {
		t.Errorf("prompt leaked into passage: %q", got)
	}
}

func TestPassageCleansBoilerplateLines(t *testing.T) {
	block := strings.Join([]string{
		"Question ID p3",
		"",
		"header",
		"",
		"SAT Reading and Writing",
		"The observed pattern held across every trial in the second experiment.",
		"ID: p3",
		"",
		"Which choice is correct?",
	}, "\n")
	got := ExtractPassage(block)
	if strings.Contains(got, "SAT Reading") || strings.Contains(got, "ID:") {
		t.Errorf("boilerplate kept: %q", got)
	}
	if !strings.Contains(got, "observed pattern") {
		t.Errorf("passage lost: %q", got)
	}
}

func TestExtractChoicesBareLetterFallback(t *testing.T) {
	block := "prompt\nA first option text\nB second option text\nC third option text\nD fourth option text\nCorrect Answer: A"
	got := ExtractChoices(block)
	if len(got) != 4 {
		t.Fatalf("got %d choices: %v", len(got), got)
	}
	if got[1] != "second option text" {
		t.Errorf("choice B = %q", got[1])
	}
}

func TestExtractChoicesIgnoresAnswerKeySection(t *testing.T) {
	got := ExtractChoices(sampleBlock)
	if len(got) != 4 {
		t.Fatalf("got %d choices: %v", len(got), got)
	}
}

func TestExtractRationalesPreservesParagraphs(t *testing.T) {
	block := "Rationale\n\nChoice A is incorrect because the first reason.\n\nIt also fails for a second reason.\n\nChoice B is the best answer because it fits.\n\nQuestion Difficulty: Easy"
	got := ExtractRationales(block)
	if !strings.Contains(got["A"], "\n\n") {
		t.Errorf("paragraph break lost in %q", got["A"])
	}
	if got["B"] != "Choice B is the best answer because it fits." {
		t.Errorf("B = %q", got["B"])
	}
}

func TestExtractRationalesMissingSection(t *testing.T) {
	if got := ExtractRationales("no such section"); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}
