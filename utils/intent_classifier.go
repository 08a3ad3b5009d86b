package utils

import (
	"regexp"
	"strings"

	"symptom-chatbot-backend/models"
)

var (
	profileActionRe = regexp.MustCompile(`\b(update|change|edit|modify)\b`)
	profileTopicRe  = regexp.MustCompile(`\b(profile|details|info)\b`)
	bookActionRe    = regexp.MustCompile(`\b(book|fix|schedule|consult|see|find|search|get|show)\b`)
	bookTargetRe    = regexp.MustCompile(`\b(doctor|specialist|appointment|consultation)\b`)
)

// IntentClassifier assigns exactly one intent per utterance using
// fixed-priority rules. Emergency is checked first and interrupts
// everything, including mid-flow conversations.
type IntentClassifier struct {
	dict          *MedicalDictionary
	profileFields []string
	specialists   []string
	complaintCues []string
}

func NewIntentClassifier(dict *MedicalDictionary) *IntentClassifier {
	return &IntentClassifier{
		dict: dict,
		profileFields: []string{
			"age", "gender", "height", "weight",
			"blood group", "address", "location",
		},
		specialists: []string{
			"dermatologist", "cardiologist", "orthopedic",
			"ophthalmologist", "general physician", "gynecologist",
			"pulmonologist",
		},
		complaintCues: []string{
			"i have", "i feel", "i am having", "suffering from",
			"pain", "fever", "cough",
		},
	}
}

// DetectIntent classifies one normalized utterance. Rules run in fixed
// priority order; the first match wins.
func (ic *IntentClassifier) DetectIntent(normalized models.NormalizedInput, entities models.ExtractedEntities) models.DetectedIntent {
	text := normalized.NormalizedText
	if text == "" {
		text = normalized.CleanedText
	}
	if text == "" {
		text = strings.ToLower(normalized.RawText)
	}
	words := strings.Fields(text)

	// 1. Emergency overrides everything. Checked against both the
	// cleaned and the normalized form so phrase substitution can
	// never mask an emergency keyword.
	for _, phrase := range ic.dict.EmergencyPhrases {
		if strings.Contains(text, phrase) || strings.Contains(normalized.CleanedText, phrase) {
			return models.DetectedIntent{Type: models.IntentEmergency, Confidence: 1.0}
		}
	}

	// 2. Short control words: stop, yes, no.
	if len(words) <= 2 {
		if anyWordIn(words, ic.dict.StopWordsIntent) {
			return models.DetectedIntent{Type: models.IntentStop, Confidence: 0.95}
		}
		if anyWordIn(words, ic.dict.YesWords) {
			return models.DetectedIntent{Type: models.IntentYes, Confidence: 0.95}
		}
		if anyWordIn(words, ic.dict.NoWords) {
			return models.DetectedIntent{Type: models.IntentNo, Confidence: 0.95}
		}
	}

	// 3. Update profile: an action verb plus either a profile topic
	// word or a named field.
	if profileActionRe.MatchString(text) {
		targets := ic.matchedFields(text)
		if profileTopicRe.MatchString(text) || len(targets) > 0 {
			return models.DetectedIntent{
				Type:       models.IntentUpdateProfile,
				Confidence: 0.85,
				Targets:    targets,
			}
		}
	}

	// 4. Book appointment: action verb plus doctor/specialist target,
	// or an explicit specialist mention.
	if bookActionRe.MatchString(text) && bookTargetRe.MatchString(text) {
		return models.DetectedIntent{Type: models.IntentBookAppointment, Confidence: 0.85}
	}
	for _, s := range ic.specialists {
		if strings.Contains(text, s) {
			return models.DetectedIntent{Type: models.IntentBookAppointment, Confidence: 0.75}
		}
	}

	// 5. Report symptom: extracted symptom entities or complaint
	// phrasing.
	if len(entities.Symptoms) > 0 {
		return models.DetectedIntent{Type: models.IntentReportSymptom, Confidence: 0.9}
	}
	for _, cue := range ic.complaintCues {
		if strings.Contains(text, cue) {
			return models.DetectedIntent{Type: models.IntentReportSymptom, Confidence: 0.75}
		}
	}

	// 6. Greeting, thanks.
	for _, g := range ic.dict.GreetingWords {
		if text == g || strings.HasPrefix(text, g+" ") {
			return models.DetectedIntent{Type: models.IntentGreeting, Confidence: 0.9}
		}
	}
	if len(words) <= 3 {
		for _, t := range ic.dict.ThanksWords {
			if strings.Contains(text, t) {
				return models.DetectedIntent{Type: models.IntentThanks, Confidence: 0.9}
			}
		}
	}

	return models.DetectedIntent{Type: models.IntentOther, Confidence: 0.3}
}

func (ic *IntentClassifier) matchedFields(text string) []string {
	var fields []string
	for _, f := range ic.profileFields {
		if strings.Contains(text, f) {
			fields = append(fields, f)
		}
	}
	return fields
}

func anyWordIn(words, set []string) bool {
	for _, w := range words {
		for _, s := range set {
			if w == s {
				return true
			}
		}
	}
	return false
}
