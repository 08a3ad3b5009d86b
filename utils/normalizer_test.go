package utils

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello!!  World??  ", "hello world"},
		{"I have FEVER.", "i have fever"},
		{"temp: 101.5", "temp 101 5"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(newTestDictionary(t))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hinglish fever", "Mujhe bukhar hai", "mujhe fever"},
		{"hinglish headache", "mujhe sirdard hai", "mujhe headache"},
		{"skin doctor", "i want a skin doctor", "i want a dermatologist"},
		{"bp shorthand", "high bp", "hypertension"},
		{"sugar chain", "i have sugar", "i have diabetes"},
		{"spell correction", "i have feverr", "i have fever"},
		{"already normalized", "i have fever", "i have fever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.in)
			if got.NormalizedText != tt.want {
				t.Errorf("Normalize(%q).NormalizedText = %q, want %q", tt.in, got.NormalizedText, tt.want)
			}
		})
	}
}

func TestNormalizeRecordsCorrections(t *testing.T) {
	n := NewNormalizer(newTestDictionary(t))

	got := n.Normalize("i have feverr and hedache")
	if got.Corrections["feverr"] != "fever" {
		t.Errorf("expected correction feverr -> fever, got %v", got.Corrections)
	}
	if got.Corrections["hedache"] != "headache" {
		t.Errorf("expected correction hedache -> headache, got %v", got.Corrections)
	}
}

// Normalizing already-normalized text must be a no-op, even for rules
// that chain (sugar -> blood sugar -> diabetes).
func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(newTestDictionary(t))

	inputs := []string{
		"Mujhe bukhar hai",
		"i have sugar",
		"high bp since 2 days",
		"severe chest pain",
		"i want a skin doctor in pune",
	}

	for _, in := range inputs {
		first := n.Normalize(in).NormalizedText
		second := n.Normalize(first).NormalizedText
		if first != second {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, first, second)
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := NewNormalizer(newTestDictionary(t))

	got := n.Normalize("")
	if got.NormalizedText != "" || len(got.Tokens) != 0 {
		t.Errorf("Normalize(\"\") = %+v, want empty", got)
	}
}
