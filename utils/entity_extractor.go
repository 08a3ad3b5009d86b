package utils

import (
	"regexp"
	"strconv"
	"strings"

	"symptom-chatbot-backend/models"
)

var (
	ageRe      = regexp.MustCompile(`\b(\d{1,2})\s*(years?|yrs?|y)\b`)
	durationRe = regexp.MustCompile(`\b(\d+)\s*(days?|weeks?|months?|hours?|hrs?|din|mahine)\b`)
	heightRe   = regexp.MustCompile(`\b(\d{1,3})\s*(?:cm|centimeters?|inches?|in|ft|feet)\b`)
	weightRe   = regexp.MustCompile(`\b(\d{1,3})\s*(?:kgs?|kilograms?|pounds?|lbs?)\b`)
	locationRe = regexp.MustCompile(`\bin\s+([a-zA-Z][a-zA-Z0-9\s,]*)`)
)

// EntityExtractor pulls structured fields out of normalized text. All
// fields are best-effort; absence is a zero value, never an error.
type EntityExtractor struct {
	dict  *MedicalDictionary
	spell *SpellCorrector
}

func NewEntityExtractor(dict *MedicalDictionary) *EntityExtractor {
	return &EntityExtractor{
		dict:  dict,
		spell: NewSpellCorrector(dict),
	}
}

func (e *EntityExtractor) Extract(normalizedText string) models.ExtractedEntities {
	entities := models.ExtractedEntities{Raw: normalizedText}
	text := strings.TrimSpace(normalizedText)
	if text == "" {
		return entities
	}

	if m := ageRe.FindStringSubmatch(text); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil && age >= 1 && age <= 119 {
			entities.Age = age
		}
	}

	entities.Gender = e.detectGender(text)

	if m := durationRe.FindString(text); m != "" {
		entities.Duration = strings.TrimSpace(m)
	}

	for _, word := range e.dict.IntensityWords {
		if containsWord(text, word) {
			entities.Intensity = word
			break
		}
	}

	if m := heightRe.FindStringSubmatch(text); m != nil {
		if h, err := strconv.ParseFloat(m[1], 64); err == nil && h > 30 && h < 300 {
			entities.Height = h
		}
	}

	if m := weightRe.FindStringSubmatch(text); m != nil {
		if w, err := strconv.ParseFloat(m[1], 64); err == nil && w > 2 && w < 600 {
			entities.Weight = w
		}
	}

	if m := locationRe.FindStringSubmatch(text); m != nil {
		entities.Location = strings.TrimSpace(m[1])
	}

	entities.Symptoms = e.extractSymptoms(text)
	return entities
}

// extractSymptoms scans multiword phrases, then single tokens and
// bigrams (both raw and spell-corrected forms) against the symptom
// keyword list. Results are deduplicated by exact string, insertion
// order preserved.
func (e *EntityExtractor) extractSymptoms(text string) []string {
	var detected []string
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(s)
		if len(s) < 3 {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		detected = append(detected, s)
	}

	for _, p := range e.dict.SymptomPhrases {
		if containsWord(text, p.Phrase) {
			add(p.Symptom)
		}
	}

	tokens := strings.Fields(text)
	for i, token := range tokens {
		corrected := e.spell.Correct(token)

		if e.dict.IsSymptomKeyword(token) {
			add(token)
		} else if e.dict.IsSymptomKeyword(corrected) {
			add(corrected)
		}

		if i+1 < len(tokens) {
			bigram := token + " " + tokens[i+1]
			correctedBigram := corrected + " " + e.spell.Correct(tokens[i+1])
			if e.dict.IsSymptomKeyword(bigram) {
				add(bigram)
			} else if e.dict.IsSymptomKeyword(correctedBigram) {
				add(correctedBigram)
			}
		}
	}

	return detected
}

func (e *EntityExtractor) detectGender(text string) string {
	for _, token := range strings.Fields(text) {
		switch token {
		case "male", "female", "man", "woman", "boy", "girl",
			"ladka", "ladki", "trans", "transgender":
			return e.dict.NormalizeGender(token)
		}
	}
	return ""
}

// containsWord reports whether phrase occurs in text on word
// boundaries.
func containsWord(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		startOK := start == 0 || text[start-1] == ' '
		endOK := end == len(text) || text[end] == ' ' || text[end] == ','
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}
