package textutil

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	got := StripTags(`<p class="intro">Hello<br/>world</p>`)
	if got != " Hello world " {
		t.Errorf("StripTags = %q", got)
	}
}

func TestDecodeEntities(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"it&rsquo;s", "it's"},
		{"a&mdash;b", "a—b"},
		{"a&ndash;b", "a–b"},
		{`&ldquo;quoted&rdquo;`, `"quoted"`},
		{"one&nbsp;two", "one two"},
		{"&#8217;", "'"},
	}
	for _, c := range cases {
		if got := DecodeEntities(c.in); got != c.want {
			t.Errorf("DecodeEntities(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := "<div>\n  The writer&rsquo;s   claim&mdash;made twice &mdash;\nholds.\n</div>"
	want := "The writer's claim—made twice — holds."
	if got := Normalize(in); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q", got)
	}
}

func TestCleanTruncates(t *testing.T) {
	got := Clean(strings.Repeat("a", maxFieldLen+500))
	if len(got) != maxFieldLen {
		t.Fatalf("len = %d, want %d", len(got), maxFieldLen)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis")
	}
}
