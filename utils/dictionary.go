package utils

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// The canonical vocabulary ships with the binary as a versioned data
// asset. It is loaded once at startup and never mutated afterwards.
//
//go:embed medical_dictionary.json
var medicalDictionaryJSON []byte

// SubstitutionRule rewrites a phrase to its canonical medical form.
// Rules are applied longest-phrase-first on word boundaries.
type SubstitutionRule struct {
	Phrase      string
	Replacement string
	re          *regexp.Regexp
}

// SymptomPhrase maps a multiword complaint to a canonical symptom.
type SymptomPhrase struct {
	Phrase  string
	Symptom string
}

// SymptomConditions maps one symptom keyword to candidate conditions.
// Kept as an ordered slice so risk output order is deterministic.
type SymptomConditions struct {
	Symptom    string
	Conditions []string
}

// MedicalDictionary is the read-only lookup set shared by the
// normalizer, entity extractor, intent classifier and medical rules.
// Construct once with NewMedicalDictionary and inject everywhere.
type MedicalDictionary struct {
	KnownWords        []string
	StopWords         map[string]struct{}
	SubstitutionRules []SubstitutionRule
	SymptomPhrases    []SymptomPhrase
	SymptomKeywords   []string
	EmergencyPhrases  []string
	IntensityWords    []string
	GreetingWords     []string
	ThanksWords       []string
	YesWords          []string
	NoWords           []string
	StopWordsIntent   []string
	GenderMap         map[string]string
	GenderRisks       map[string][]string
	CityRisks         map[string][]string
	SymptomConditions []SymptomConditions
	ConditionToSpec   map[string]string

	symptomKeywordSet map[string]struct{}
}

// NewMedicalDictionary loads the embedded vocabulary and builds the
// static rule tables. Buckets and rule order are sorted so lookups are
// deterministic for a fixed dictionary version.
func NewMedicalDictionary() (*MedicalDictionary, error) {
	var words []string
	if err := json.Unmarshal(medicalDictionaryJSON, &words); err != nil {
		return nil, fmt.Errorf("failed to load medical dictionary: %w", err)
	}
	sort.Strings(words)

	d := &MedicalDictionary{
		KnownWords: words,
		StopWords: toSet(
			// Hinglish fillers
			"mujhe", "mujh", "chahiye", "batao", "dikhao",
			// common words close enough to dictionary entries to
			// produce bad corrections
			"problem", "issue", "male", "female", "woman",
			"skin", "heart", "bone", "have", "has", "had", "feel",
			"high", "ache", "sure", "okay", "done",
			"feeling", "been", "from", "with", "since", "very",
			"much", "tell", "show", "please", "want", "need", "what",
			"when", "where", "your", "like", "about", "today",
			"morning", "night", "really", "little", "some", "this",
			"that", "then", "them", "they", "there", "here", "also",
			"just", "take", "taking", "days", "weeks", "months",
			"years", "hours", "update", "change", "edit", "modify",
			"book", "find", "search",
		),
		SubstitutionRules: []SubstitutionRule{
			// specialists
			{Phrase: "skin doctor", Replacement: "dermatologist"},
			{Phrase: "skin specialist", Replacement: "dermatologist"},
			{Phrase: "heart doctor", Replacement: "cardiologist"},
			{Phrase: "bone doctor", Replacement: "orthopedic"},
			{Phrase: "eye doctor", Replacement: "ophthalmologist"},
			// hinglish fillers
			{Phrase: "chahiye", Replacement: ""},
			{Phrase: "dikhao", Replacement: "show"},
			{Phrase: "batao", Replacement: "tell"},
			{Phrase: "hai", Replacement: ""},
			{Phrase: "ho raha", Replacement: ""},
			{Phrase: "ho rahi", Replacement: ""},
			// hinglish and slang medical terms
			{Phrase: "bukhar", Replacement: "fever"},
			{Phrase: "bukhaar", Replacement: "fever"},
			{Phrase: "kharash", Replacement: "rash"},
			{Phrase: "khasi", Replacement: "cough"},
			{Phrase: "sirdard", Replacement: "headache"},
			{Phrase: "pet dard", Replacement: "stomach pain"},
			{Phrase: "chakkar", Replacement: "dizziness"},
			{Phrase: "jukaam", Replacement: "cold"},
			// medical shorthand
			{Phrase: "high bp", Replacement: "hypertension"},
			{Phrase: "bp", Replacement: "blood pressure"},
			{Phrase: "blood sugar", Replacement: "diabetes"},
			{Phrase: "sugar", Replacement: "blood sugar"},
		},
		SymptomPhrases: []SymptomPhrase{
			{Phrase: "pain while peeing", Symptom: "burning urination"},
			{Phrase: "pain while urinating", Symptom: "burning urination"},
			{Phrase: "painful urination", Symptom: "burning urination"},
			{Phrase: "fever since morning", Symptom: "fever"},
			{Phrase: "runny nose and cough", Symptom: "cold"},
			{Phrase: "sore throat and fever", Symptom: "pharyngitis"},
			{Phrase: "breathless on exertion", Symptom: "dyspnea on exertion"},
			{Phrase: "vomiting and diarrhea", Symptom: "gastroenteritis"},
		},
		SymptomKeywords: []string{
			"fever", "cold", "cough", "headache", "migraine", "pain",
			"abdominal pain", "stomach pain", "chest pain",
			"burning urination", "vomiting", "nausea", "diarrhea",
			"chills", "itching", "rash", "dry skin", "fatigue",
			"dizziness", "sore throat", "breathlessness",
			"shortness of breath",
		},
		EmergencyPhrases: []string{
			"chest pain", "shortness of breath", "cannot breathe",
			"cant breathe", "can t breathe", "difficulty breathing",
			"unconscious", "loss of consciousness", "heart attack",
		},
		IntensityWords: []string{"mild", "moderate", "severe", "slight", "sharp", "dull"},
		GreetingWords:  []string{"hi", "hello", "hey", "good morning", "good evening"},
		ThanksWords:    []string{"thanks", "thank you", "thankyou", "thx"},
		YesWords:       []string{"yes", "ok", "okay", "sure", "yeah", "yep"},
		NoWords:        []string{"no", "not", "nope", "never"},
		StopWordsIntent: []string{"stop", "exit", "quit", "bye", "goodbye"},
		GenderMap: map[string]string{
			"m": "male", "ma": "male", "mal": "male", "male": "male",
			"maale": "male", "mael": "male", "mle": "male",
			"ladka": "male", "boy": "male", "man": "male",
			"f": "female", "fe": "female", "fem": "female",
			"femal": "female", "female": "female", "femail": "female",
			"femle": "female", "ladki": "female", "girl": "female",
			"woman": "female",
			"trans": "trans", "transgender": "trans",
		},
		GenderRisks: map[string][]string{
			"female": {"anemia", "hormonal imbalance"},
			"male":   {"cardiac risk"},
		},
		CityRisks: map[string][]string{
			"mumbai":  {"dengue", "malaria", "fungal skin infection"},
			"pune":    {"respiratory allergy"},
			"delhi":   {"respiratory irritation", "allergy"},
			"chennai": {"fungal skin infection", "heat rash"},
			"kolkata": {"dengue", "malaria"},
			"jaipur":  {"dehydration", "heat rash", "skin irritation"},
			"jodhpur": {"dehydration", "heat rash", "skin irritation"},
			"udaipur": {"dehydration", "heat rash"},
		},
		SymptomConditions: []SymptomConditions{
			{Symptom: "chest pain", Conditions: []string{"heart disease"}},
			{Symptom: "breathlessness", Conditions: []string{"heart disease", "respiratory infection"}},
			{Symptom: "shortness of breath", Conditions: []string{"heart disease", "respiratory infection"}},
			{Symptom: "fever", Conditions: []string{"viral infection", "dengue"}},
			{Symptom: "itching", Conditions: []string{"skin infection", "allergy"}},
			{Symptom: "rash", Conditions: []string{"skin infection", "allergy"}},
			{Symptom: "joint pain", Conditions: []string{"arthritis"}},
			{Symptom: "fatigue", Conditions: []string{"anemia", "metabolic disorder"}},
		},
		ConditionToSpec: map[string]string{
			"heart disease":         "cardiologist",
			"respiratory infection": "pulmonologist",
			"skin infection":        "dermatologist",
			"allergy":               "dermatologist",
			"dengue":                "general physician",
			"viral infection":       "general physician",
			"anemia":                "general physician",
			"arthritis":             "orthopedic",
		},
	}

	// Longest phrase first so multiword rules win over their parts.
	sort.SliceStable(d.SubstitutionRules, func(i, j int) bool {
		return len(d.SubstitutionRules[i].Phrase) > len(d.SubstitutionRules[j].Phrase)
	})
	for i := range d.SubstitutionRules {
		r := &d.SubstitutionRules[i]
		r.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(r.Phrase) + `\b`)
	}

	d.symptomKeywordSet = make(map[string]struct{}, len(d.SymptomKeywords))
	for _, s := range d.SymptomKeywords {
		d.symptomKeywordSet[s] = struct{}{}
	}

	return d, nil
}

// IsStopWord reports whether a token is excluded from spell correction.
func (d *MedicalDictionary) IsStopWord(token string) bool {
	_, ok := d.StopWords[token]
	return ok
}

// IsSymptomKeyword reports whether a token or bigram is a known symptom.
func (d *MedicalDictionary) IsSymptomKeyword(s string) bool {
	_, ok := d.symptomKeywordSet[s]
	return ok
}

// NormalizeGender maps free-text gender words (including misspellings
// and Hinglish) onto the canonical set. Returns "" when unmapped.
func (d *MedicalDictionary) NormalizeGender(raw string) string {
	return d.GenderMap[strings.ToLower(strings.TrimSpace(raw))]
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
