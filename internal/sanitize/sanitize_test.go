package sanitize

import "testing"

func TestCleanStripsScript(t *testing.T) {
	s := New()
	got := s.Clean(`hello <script>alert("x")</script>world`)
	if got != "hello world" {
		t.Fatalf("Clean = %q, want %q", got, "hello world")
	}
}

func TestCleanKeepsBasicFormatting(t *testing.T) {
	s := New()
	in := "<b>bold</b> and <em>emphasis</em>"
	if got := s.Clean(in); got != in {
		t.Fatalf("Clean = %q, want %q", got, in)
	}
}

func TestCleanDropsAttributes(t *testing.T) {
	s := New()
	got := s.Clean(`<p onclick="evil()">text</p>`)
	if got != "<p>text</p>" {
		t.Fatalf("Clean = %q, want %q", got, "<p>text</p>")
	}
}

func TestCleanTrimsWhitespace(t *testing.T) {
	s := New()
	if got := s.Clean("  <script>x</script>  "); got != "" {
		t.Fatalf("Clean = %q, want empty", got)
	}
}
