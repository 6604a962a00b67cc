package htmlq

import (
	"errors"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Question f8a4b2c1</title></head><body>
<script>
let question = {"questionId":"f8a4b2c1","primary_class_cd_desc":"Craft and Structure","skill_desc":"Words in Context","difficulty":"M","content":{"stem":"<p>Which choice completes the text with the most logical word?</p>","stimulus":"<p>The researcher&rsquo;s plan was ______ from the start.</p>","answerOptions":[{"content":"<p>ambitious</p>"},{"content":"<p>tentative</p>"},{"content":"<p>reluctant</p>"},{"content":"<p>hostile</p>"}],"rationale":"<p>Choice B is the best answer because the sentence signals hesitation. Choice A is incorrect because ambition is unsupported.</p>"}};
</script>
<div class="question">
  <div class="my-6"></div>
  <div><p>The researcher&rsquo;s plan&mdash;bold as it was&mdash;remained tentative from the start.</p></div>
</div>
<div><span class="font-bold">Correct Answer: </span><span>B</span></div>
</body></html>`

func TestExtract(t *testing.T) {
	rec, err := Extract(samplePage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.QuestionID != "f8a4b2c1" {
		t.Errorf("QuestionID = %q", rec.QuestionID)
	}
	if rec.Domain != "Craft and Structure" || rec.Skill != "Words in Context" {
		t.Errorf("classification = (%q, %q)", rec.Domain, rec.Skill)
	}
	if rec.Difficulty != "Medium" {
		t.Errorf("Difficulty = %q, want Medium", rec.Difficulty)
	}
	if rec.QuestionText != "Which choice completes the text with the most logical word?" {
		t.Errorf("QuestionText = %q", rec.QuestionText)
	}
	want := []string{"ambitious", "tentative", "reluctant", "hostile"}
	if len(rec.AnswerOptions) != 4 {
		t.Fatalf("AnswerOptions = %v", rec.AnswerOptions)
	}
	for i, w := range want {
		if rec.AnswerOptions[i] != w {
			t.Errorf("AnswerOptions[%d] = %q, want %q", i, rec.AnswerOptions[i], w)
		}
	}
	if rec.CorrectChoice != "B" {
		t.Errorf("CorrectChoice = %q", rec.CorrectChoice)
	}
	if !strings.Contains(rec.Passage, "plan—bold as it was—remained tentative") {
		t.Errorf("Passage = %q", rec.Passage)
	}
	if !strings.HasPrefix(rec.Rationales["B"], "Choice B is the best answer") {
		t.Errorf("Rationales[B] = %q", rec.Rationales["B"])
	}
	if !strings.HasPrefix(rec.Rationales["A"], "Choice A is incorrect") {
		t.Errorf("Rationales[A] = %q", rec.Rationales["A"])
	}
}

func TestExtractNotFound(t *testing.T) {
	_, err := Extract("<html><body>Question not found</body></html>")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExtractMalformedDocument(t *testing.T) {
	_, err := Extract("<html><body><p>nothing here</p></body></html>")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("err = %v, want ErrMalformedDocument", err)
	}
}

func TestExtractInvalidPayload(t *testing.T) {
	_, err := Extract(`<script>let question = {"questionId": broken};</script>`)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("err = %v, want ErrInvalidPayload", err)
	}
}

func TestExtractRejectsImages(t *testing.T) {
	page := `<script>let question = {"questionId":"img01","content":{"stem":"<figure>chart</figure>","stimulus":"","answerOptions":[],"rationale":""}};</script>`
	_, err := Extract(page)
	if !errors.Is(err, ErrHasImage) {
		t.Errorf("err = %v, want ErrHasImage", err)
	}
}

func TestExtractMissingCorrectAnswerIsSoft(t *testing.T) {
	page := strings.Replace(samplePage, `<span class="font-bold">Correct Answer: </span><span>B</span>`, "", 1)
	rec, err := Extract(page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.CorrectChoice != "" {
		t.Errorf("CorrectChoice = %q, want empty", rec.CorrectChoice)
	}
}
