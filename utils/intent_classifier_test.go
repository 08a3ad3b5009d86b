package utils

import (
	"reflect"
	"testing"

	"symptom-chatbot-backend/models"
)

// classify runs the full normalize -> extract -> classify pipeline the
// way the chat service does.
func classify(t *testing.T, dict *MedicalDictionary, text string) models.DetectedIntent {
	t.Helper()
	n := NewNormalizer(dict)
	e := NewEntityExtractor(dict)
	ic := NewIntentClassifier(dict)

	normalized := n.Normalize(text)
	entities := e.Extract(normalized.NormalizedText)
	return ic.DetectIntent(normalized, entities)
}

func TestDetectIntent(t *testing.T) {
	dict := newTestDictionary(t)

	tests := []struct {
		text string
		want models.IntentType
	}{
		{"hello", models.IntentGreeting},
		{"good morning doctor", models.IntentGreeting},
		{"thank you", models.IntentThanks},
		{"yes", models.IntentYes},
		{"no", models.IntentNo},
		{"stop", models.IntentStop},
		{"bye", models.IntentStop},
		{"i have fever and headache", models.IntentReportSymptom},
		{"mujhe bukhar hai", models.IntentReportSymptom},
		{"i feel tired all the time", models.IntentReportSymptom},
		{"i want to update my profile", models.IntentUpdateProfile},
		{"book an appointment", models.IntentBookAppointment},
		{"i need a dermatologist", models.IntentBookAppointment},
		{"find a skin doctor", models.IntentBookAppointment},
		{"severe chest pain", models.IntentEmergency},
		{"i cant breathe", models.IntentEmergency},
		{"heart attack", models.IntentEmergency},
		{"asdf qwerty", models.IntentOther},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := classify(t, dict, tt.text)
			if got.Type != tt.want {
				t.Errorf("DetectIntent(%q) = %s, want %s", tt.text, got.Type, tt.want)
			}
		})
	}
}

// Emergency must win even when the utterance also carries symptom and
// duration entities.
func TestDetectIntentEmergencyOverride(t *testing.T) {
	dict := newTestDictionary(t)

	got := classify(t, dict, "I have fever and chest pain since 2 days")
	if got.Type != models.IntentEmergency {
		t.Fatalf("DetectIntent() = %s, want %s", got.Type, models.IntentEmergency)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
}

func TestDetectIntentUpdateProfileTargets(t *testing.T) {
	dict := newTestDictionary(t)

	got := classify(t, dict, "change my height")
	if got.Type != models.IntentUpdateProfile {
		t.Fatalf("DetectIntent() = %s, want %s", got.Type, models.IntentUpdateProfile)
	}
	if !reflect.DeepEqual(got.Targets, []string{"height"}) {
		t.Errorf("Targets = %v, want [height]", got.Targets)
	}
}

// "yes" embedded in a longer sentence must not be taken as
// confirmation.
func TestDetectIntentControlWordsOnlyWhenShort(t *testing.T) {
	dict := newTestDictionary(t)

	got := classify(t, dict, "yes i have a fever and a cough")
	if got.Type != models.IntentReportSymptom {
		t.Errorf("DetectIntent() = %s, want %s", got.Type, models.IntentReportSymptom)
	}
}
