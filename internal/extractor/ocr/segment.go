// Package ocr extracts question records from raw OCR text dumps of scanned
// answer-explanation documents. The text has no structural markup, so every
// field is located by positional heuristics with ordered fallbacks, and every
// extractor fails soft: a field that cannot be located comes back empty and
// the record validator makes the final accept/reject call.
package ocr

import (
	"regexp"
	"strings"

	"github.com/lintahlo/potential-backend/internal/record"
	"github.com/lintahlo/potential-backend/internal/taxonomy"
)

var questionMarkerPattern = regexp.MustCompile(`(?i)^Question ID (\w+)`)

// Block is one question's raw text, keyed by its marker line's ID.
type Block struct {
	ID   string
	Text string
}

// Segment splits OCR output lines into per-question blocks. A line matching
// "Question ID <id>" opens a block and closes the previous one; the final
// block closes at end of input. Input without marker lines yields no blocks.
func Segment(lines []string) []Block {
	var blocks []Block
	var current *Block
	var buf []string

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(buf, "\n"))
			blocks = append(blocks, *current)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := questionMarkerPattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			current = &Block{ID: m[1]}
			buf = []string{trimmed}
			continue
		}
		if current != nil {
			buf = append(buf, trimmed)
		}
	}
	flush()
	return blocks
}

// SegmentText is a convenience wrapper over Segment for a whole dump.
func SegmentText(text string) []Block {
	return Segment(strings.Split(text, "\n"))
}

// ParseBlock assembles a best-effort question record from one block. No
// extraction failure aborts the block; missing fields surface as empty
// strings for the validator to judge.
func ParseBlock(b Block) *record.QuestionRecord {
	domain, skill := ExtractDomainSkill(b.Text, b.ID)
	return &record.QuestionRecord{
		QuestionID:    b.ID,
		Domain:        domain,
		Skill:         skill,
		Difficulty:    taxonomy.MapDifficulty(ExtractDifficulty(b.Text)),
		Passage:       ExtractPassage(b.Text),
		QuestionText:  ExtractPrompt(b.Text, skill),
		AnswerOptions: ExtractChoices(b.Text),
		CorrectChoice: ExtractCorrectAnswer(b.Text),
		Rationales:    ExtractRationales(b.Text),
	}
}
