package utils

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	e := NewEntityExtractor(newTestDictionary(t))

	got := e.Extract("i am 25 years old male with fever in delhi")

	if got.Age != 25 {
		t.Errorf("Age = %d, want 25", got.Age)
	}
	if got.Gender != "male" {
		t.Errorf("Gender = %q, want %q", got.Gender, "male")
	}
	if got.Location != "delhi" {
		t.Errorf("Location = %q, want %q", got.Location, "delhi")
	}
	if !reflect.DeepEqual(got.Symptoms, []string{"fever"}) {
		t.Errorf("Symptoms = %v, want [fever]", got.Symptoms)
	}
}

func TestExtractSymptomBigrams(t *testing.T) {
	e := NewEntityExtractor(newTestDictionary(t))

	got := e.Extract("severe chest pain since 2 days")

	want := []string{"chest pain", "pain"}
	if !reflect.DeepEqual(got.Symptoms, want) {
		t.Errorf("Symptoms = %v, want %v", got.Symptoms, want)
	}
	if got.Intensity != "severe" {
		t.Errorf("Intensity = %q, want %q", got.Intensity, "severe")
	}
	if got.Duration != "2 days" {
		t.Errorf("Duration = %q, want %q", got.Duration, "2 days")
	}
}

func TestExtractSymptomPhrases(t *testing.T) {
	e := NewEntityExtractor(newTestDictionary(t))

	tests := []struct {
		text string
		want string
	}{
		{"pain while peeing", "burning urination"},
		{"sore throat and fever", "pharyngitis"},
		{"vomiting and diarrhea", "gastroenteritis"},
	}

	for _, tt := range tests {
		got := e.Extract(tt.text)
		if len(got.Symptoms) == 0 || got.Symptoms[0] != tt.want {
			t.Errorf("Extract(%q).Symptoms = %v, want first %q", tt.text, got.Symptoms, tt.want)
		}
	}
}

func TestExtractSymptomsDeduped(t *testing.T) {
	e := NewEntityExtractor(newTestDictionary(t))

	got := e.Extract("fever fever and more fever")
	if !reflect.DeepEqual(got.Symptoms, []string{"fever"}) {
		t.Errorf("Symptoms = %v, want [fever]", got.Symptoms)
	}
}

func TestExtractBodyMetrics(t *testing.T) {
	e := NewEntityExtractor(newTestDictionary(t))

	got := e.Extract("female 175 cm and 70 kg")
	if got.Height != 175 {
		t.Errorf("Height = %v, want 175", got.Height)
	}
	if got.Weight != 70 {
		t.Errorf("Weight = %v, want 70", got.Weight)
	}
	if got.Gender != "female" {
		t.Errorf("Gender = %q, want %q", got.Gender, "female")
	}
}

func TestExtractRejectsOutOfRangeValues(t *testing.T) {
	e := NewEntityExtractor(newTestDictionary(t))

	got := e.Extract("20 cm and 700 kg")
	if got.Height != 0 {
		t.Errorf("Height = %v, want 0 for out-of-range value", got.Height)
	}
	if got.Weight != 0 {
		t.Errorf("Weight = %v, want 0 for out-of-range value", got.Weight)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	e := NewEntityExtractor(newTestDictionary(t))

	got := e.Extract("")
	if got.Age != 0 || got.Gender != "" || len(got.Symptoms) != 0 {
		t.Errorf("Extract(\"\") = %+v, want zero entities", got)
	}
}
