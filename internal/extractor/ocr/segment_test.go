package ocr

import (
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	text := strings.Join([]string{
		"page header noise",
		"Question ID abc123",
		"Assessment Test Domain Skill Difficulty",
		"first block body",
		"Question ID 789xyz",
		"second block body",
	}, "\n")

	blocks := SegmentText(text)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].ID != "abc123" || blocks[1].ID != "789xyz" {
		t.Errorf("IDs = %q, %q", blocks[0].ID, blocks[1].ID)
	}
	if !strings.HasSuffix(blocks[0].Text, "first block body") {
		t.Errorf("block 0 text = %q", blocks[0].Text)
	}
	// Lines before the first marker belong to no block.
	if strings.Contains(blocks[0].Text, "page header noise") {
		t.Errorf("preamble leaked into block 0: %q", blocks[0].Text)
	}
}

func TestSegmentCaseInsensitiveMarker(t *testing.T) {
	blocks := SegmentText("QUESTION ID a1b2\nbody")
	if len(blocks) != 1 || blocks[0].ID != "a1b2" {
		t.Fatalf("blocks = %+v", blocks)
	}
}

func TestSegmentMidLineMentionDoesNotSplit(t *testing.T) {
	blocks := SegmentText("Question ID abc123\nsee the later Question ID note\ntail")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
}

func TestSegmentNoMarkers(t *testing.T) {
	blocks := SegmentText("no questions in here\njust prose")
	if len(blocks) != 0 {
		t.Fatalf("got %d blocks, want 0", len(blocks))
	}
}

func TestSegmentFinalBlockClosedAtEOF(t *testing.T) {
	blocks := SegmentText("Question ID tail9\nlast line")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	if blocks[0].Text != "Question ID tail9\nlast line" {
		t.Errorf("text = %q", blocks[0].Text)
	}
}
