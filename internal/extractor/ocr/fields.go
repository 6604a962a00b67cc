package ocr

import (
	"regexp"
	"strings"

	"github.com/lintahlo/potential-backend/internal/taxonomy"
	"github.com/lintahlo/potential-backend/internal/textutil"
)

var (
	correctAnswerPattern = regexp.MustCompile(`Correct Answer:\s*([A-D])`)
	questionIDPattern    = regexp.MustCompile(`(?i)^Question ID\s+(\w+)`)

	// The domain region sits between the structured header's "Difficulty"
	// label and the first "ID:" repeat of the question identifier.
	domainRegionPattern = regexp.MustCompile(`Difficulty\s*([\s\S]+?)\s*ID:`)

	choiceDotPattern  = regexp.MustCompile(`\n([A-D])\.`)
	choiceBarePattern = regexp.MustCompile(`\n([A-D])\s`)

	rationaleHeaderPattern = regexp.MustCompile(`(Choice [A-D] is (?:the best answer|correct|incorrect))`)
	choiceLetterPattern    = regexp.MustCompile(`Choice ([A-D])`)

	idLinePattern     = regexp.MustCompile(`\nID:[^\n]*\n`)
	idAnswerPattern   = regexp.MustCompile(`ID: \w+ Answer`)
	paragraphGap      = regexp.MustCompile(`\n\s*\n`)
	ideasStrayPattern = regexp.MustCompile(`^Ideas[a-zA-Z]{0,8}$`)

	// Phrases that reliably open the question prompt; everything before the
	// earliest one is passage material.
	promptCuePattern = regexp.MustCompile(`(?i)which choice|based on the text|what can be inferred|according to the text|which finding|which quotation|which statement|as used in the text`)
)

// headerPrefixes mark OCR boilerplate lines that must never survive into a
// passage: page headers, repeated ID lines, test banner text.
var headerPrefixes = []string{"Question ID", "Assessment Test", "SAT Reading", "ID:"}

// passageMinLen rejects primary-heuristic candidates that are actually
// mis-segmented header fragments. Calibrated constant.
const passageMinLen = 20

// ExtractDifficulty returns the block's final whitespace-separated token.
// The structured footer prints "Question Difficulty: <level>" as the last
// line, so the last word is the level.
func ExtractDifficulty(block string) string {
	fields := strings.Fields(block)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// ExtractCorrectAnswer reads the answer key letter.
func ExtractCorrectAnswer(block string) string {
	if m := correctAnswerPattern.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	return ""
}

// ExtractQuestionID reads the marker line's identifier at block start.
func ExtractQuestionID(block string) string {
	if m := questionIDPattern.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	return ""
}

// ExtractDomainSkill classifies the block against the fixed taxonomy using
// the domain region's token set. Command of Evidence is further split into
// its Textual/Quantitative sub-variant by line density after the ID marker.
func ExtractDomainSkill(block, questionID string) (string, string) {
	region := ""
	if m := domainRegionPattern.FindStringSubmatch(block); m != nil {
		region = m[1]
	}
	domain, skill := taxonomy.Classify(region)
	if skill == taxonomy.SkillCommandOfEvidence {
		skill = taxonomy.SkillEvidenceTextual
		marker := "ID: " + questionID
		if idx := strings.Index(block, marker); idx >= 0 {
			skill = taxonomy.SubclassifyEvidence(block[idx+len(marker):])
		}
	}
	return domain, skill
}

// ExtractPassage locates the reading passage. Heuristics in fallback order:
// the region between the 2nd and 3rd blank-line separators, then the text
// following an "ID:" line, then everything ahead of the first prompt cue.
func ExtractPassage(block string) string {
	raw := firstOf(block,
		passageBetweenSeparators,
		passageAfterIDLine,
		passageBeforePromptCue,
	)
	return textutil.CollapseSpace(raw)
}

func passageBetweenSeparators(block string) (string, bool) {
	parts := strings.Split(block, "\n\n")
	if len(parts) < 4 {
		return "", false
	}
	candidate := strings.TrimSpace(parts[2])
	if len(candidate) <= passageMinLen || strings.HasPrefix(candidate, "ID:") {
		return "", false
	}
	return cleanPassage(candidate), true
}

func passageAfterIDLine(block string) (string, bool) {
	loc := idLinePattern.FindStringIndex(block)
	if loc == nil {
		return "", false
	}
	rest := block[loc[1]:]
	end := len(rest)
	if i := strings.Index(rest, "\n\n"); i >= 0 && i < end {
		end = i
	}
	if i := strings.Index(rest, "\nA."); i >= 0 && i < end {
		end = i
	}
	return cleanPassage(rest[:end]), true
}

func passageBeforePromptCue(block string) (string, bool) {
	end := len(block)
	if loc := promptCuePattern.FindStringIndex(block); loc != nil {
		end = loc[0]
	} else if loc := idAnswerPattern.FindStringIndex(block); loc != nil {
		end = loc[0]
	}
	return cleanPassage(block[:end]), true
}

// cleanPassage drops OCR boilerplate lines from a passage candidate.
func cleanPassage(s string) string {
	var keep []string
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isHeaderLine(trimmed) || ideasStrayPattern.MatchString(trimmed) {
			continue
		}
		keep = append(keep, trimmed)
	}
	return strings.Join(keep, "\n")
}

func isHeaderLine(line string) bool {
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// ExtractPrompt locates the question prompt. Quantitative-evidence items
// print the prompt as the line directly above the choice list; prose items
// separate it with blank lines, normally landing in segment index 4.
func ExtractPrompt(block, skill string) string {
	if skill == taxonomy.SkillEvidenceQuant {
		return textutil.CollapseSpace(promptLineAboveChoices(block))
	}
	raw := firstOf(block,
		promptFromSegmentIndex,
		promptBetweenSeparatorsBeforeChoices,
	)
	return textutil.CollapseSpace(raw)
}

func promptLineAboveChoices(block string) string {
	before := block
	if i := strings.Index(block, "\nA."); i >= 0 {
		before = block[:i]
	}
	lines := strings.Split(before, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// promptFromSegmentIndex takes blank-line segment 4. Calibrated: the marker
// line, header banner, and ID line occupy segments 0-2 and the passage
// segment 3, leaving the prompt at index 4.
func promptFromSegmentIndex(block string) (string, bool) {
	parts := strings.Split(block, "\n\n")
	if len(parts) <= 4 {
		return "", false
	}
	seg := parts[4]
	if i := strings.Index(seg, "\nA."); i >= 0 {
		seg = seg[:i]
	}
	return strings.TrimSpace(seg), true
}

// promptBetweenSeparatorsBeforeChoices takes the text between the two
// blank-line separators immediately preceding the choice list, or the text
// directly before the list when only one separator precedes it.
func promptBetweenSeparatorsBeforeChoices(block string) (string, bool) {
	markerIdx := strings.Index(block, "\nA.")
	if markerIdx < 0 {
		return "", false
	}
	pre := block[:markerIdx]
	sep2 := strings.LastIndex(pre, "\n\n")
	if sep2 < 0 {
		return "", false
	}
	sep1 := strings.LastIndex(pre[:sep2], "\n\n")
	if sep1 >= 0 {
		return strings.TrimSpace(pre[sep1+2 : sep2]), true
	}
	return strings.TrimSpace(pre[sep2+2:]), true
}

// ExtractChoices splits the lettered answer list. Markers are newline-led
// "A."–"D." lines, with a bare-letter fallback for OCR output that drops the
// periods. Each choice runs to the next marker or a terminating cue. The
// scan stops at "Correct Answer:" so the answer-key section's repeats of the
// letters are never mistaken for choices.
func ExtractChoices(block string) []string {
	region := block
	if i := strings.Index(block, "Correct Answer:"); i >= 0 {
		region = block[:i]
	}

	matches := choiceDotPattern.FindAllStringSubmatchIndex(region, -1)
	if len(matches) == 0 {
		matches = choiceBarePattern.FindAllStringSubmatchIndex(region, -1)
	}
	if len(matches) == 0 {
		return nil
	}

	choices := make([]string, 0, len(matches))
	for i, m := range matches {
		start := m[1]
		end := len(region)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		choices = append(choices, textutil.CollapseSpace(cutAtTerminator(region[start:end])))
	}
	return choices
}

func cutAtTerminator(s string) string {
	for _, term := range []string{"ID:", "Correct Answer:", "Rationale"} {
		if i := strings.Index(s, term); i >= 0 {
			s = s[:i]
		}
	}
	return s
}

// ExtractRationales splits the Rationale section into per-choice
// explanations. Whitespace is collapsed but paragraph breaks inside an
// explanation are preserved.
func ExtractRationales(block string) map[string]string {
	out := map[string]string{}
	start := strings.Index(block, "Rationale")
	if start < 0 {
		return out
	}
	section := block[start+len("Rationale"):]
	if i := strings.Index(section, "Question Difficulty:"); i >= 0 {
		section = section[:i]
	}

	sections := rationaleHeaderPattern.Split(section, -1)
	headers := rationaleHeaderPattern.FindAllString(section, -1)
	for i, header := range headers {
		letter := choiceLetterPattern.FindStringSubmatch(header)
		if letter == nil {
			continue
		}
		body := ""
		if i+1 < len(sections) {
			body = sections[i+1]
		}
		out[letter[1]] = collapseKeepParagraphs(header + body)
	}
	return out
}

// collapseKeepParagraphs collapses whitespace runs inside each paragraph
// while keeping the double-newline paragraph boundaries.
func collapseKeepParagraphs(s string) string {
	paras := paragraphGap.Split(s, -1)
	kept := paras[:0]
	for _, p := range paras {
		if collapsed := textutil.CollapseSpace(p); collapsed != "" {
			kept = append(kept, collapsed)
		}
	}
	return strings.Join(kept, "\n\n")
}
