package clean

import "testing"

func TestTitleCollapsesNewlinesAndStripsControlRunes(t *testing.T) {
	got := Title("Der Herr\nder Ringe\x00 - Die Gefährten")
	want := "Der Herr der Ringe - Die Gefährten"
	if got != want {
		t.Fatalf("Title() = %q, want %q", got, want)
	}
}

func TestTitleTrimsSurroundingWhitespace(t *testing.T) {
	if got := Title("  Buddy / Bully Herbig  "); got != "Buddy / Bully Herbig" {
		t.Fatalf("Title() = %q", got)
	}
}

func TestTitleKeepsPunctuationAndLetters(t *testing.T) {
	in := "Vier Fäuste für ein Halleluja / Bud Spencer / Terence Hill"
	if got := Title(in); got != in {
		t.Fatalf("Title() = %q, want unchanged %q", got, in)
	}
}
