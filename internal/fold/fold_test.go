package fold

import "testing"

func TestASCII(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"García", "Garcia"},
		{"cöruná", "coruna"},
		{"Coruña", "Coruna"},
		{"kraß", "krass"},
		{"Maß", "Mass"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ASCII(c.in); got != c.want {
			t.Errorf("ASCII(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRuneExpands(t *testing.T) {
	if got := string(Rune('ß')); got != "ss" {
		t.Errorf("Rune('ß') = %q, want %q", got, "ss")
	}
	if got := string(Rune('a')); got != "a" {
		t.Errorf("Rune('a') = %q, want %q", got, "a")
	}
}
