package utils

import "testing"

func newTestDictionary(t *testing.T) *MedicalDictionary {
	t.Helper()
	dict, err := NewMedicalDictionary()
	if err != nil {
		t.Fatalf("NewMedicalDictionary() error: %v", err)
	}
	return dict
}

func TestCorrect(t *testing.T) {
	sc := NewSpellCorrector(newTestDictionary(t))

	tests := []struct {
		in   string
		want string
	}{
		// common misspellings within distance 2
		{"feverr", "fever"},
		{"hedache", "headache"},
		{"diabetis", "diabetes"},
		{"vomitting", "vomiting"},
		// adjacent transposition counts as one edit
		{"pian", "pain"},
		{"fevre", "fever"},
		// too short to correct
		{"hi", "hi"},
		{"flu", "flu"},
		// numbers and emails pass through
		{"1234", "1234"},
		{"me@clinic.com", "me@clinic.com"},
		// stopwords are protected even when a dictionary word is close
		{"high", "high"},
		{"ache", "ache"},
		{"sure", "sure"},
		// no candidate within distance 2
		{"coughing", "coughing"},
		{"xylophone", "xylophone"},
		// uppercase input is lowered first
		{"FEVERR", "fever"},
	}

	for _, tt := range tests {
		if got := sc.Correct(tt.in); got != tt.want {
			t.Errorf("Correct(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCorrectIsDeterministic(t *testing.T) {
	sc := NewSpellCorrector(newTestDictionary(t))

	first := sc.Correct("feverr")
	for i := 0; i < 10; i++ {
		if got := sc.Correct("feverr"); got != first {
			t.Fatalf("Correct(%q) changed between calls: %q vs %q", "feverr", first, got)
		}
	}
}

func TestCorrectSentence(t *testing.T) {
	sc := NewSpellCorrector(newTestDictionary(t))

	got := sc.CorrectSentence("i have feverr and hedache")
	want := "i have fever and headache"
	if got != want {
		t.Errorf("CorrectSentence() = %q, want %q", got, want)
	}

	if got := sc.CorrectSentence(""); got != "" {
		t.Errorf("CorrectSentence(\"\") = %q, want empty", got)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"fever", "fever", 0},
		{"feverr", "fever", 1},
		{"pian", "pain", 1}, // transposition
		{"hedache", "headache", 1},
		{"abc", "xyz", 3},
		{"", "abc", 3},
	}

	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
