package utils

import (
	"regexp"
	"strings"

	"symptom-chatbot-backend/models"
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalizer cleans raw user input, corrects spelling and rewrites
// Hinglish/slang phrases into canonical medical English.
type Normalizer struct {
	dict  *MedicalDictionary
	spell *SpellCorrector
}

func NewNormalizer(dict *MedicalDictionary) *Normalizer {
	return &Normalizer{
		dict:  dict,
		spell: NewSpellCorrector(dict),
	}
}

// Normalize produces a fresh NormalizedInput for one turn. It never
// fails: empty or malformed input passes through untouched.
func (n *Normalizer) Normalize(raw string) models.NormalizedInput {
	cleaned := CleanText(raw)
	tokens := strings.Fields(cleaned)

	corrections := make(map[string]string)
	for i, token := range tokens {
		corrected := n.spell.Correct(token)
		if corrected != token {
			corrections[token] = corrected
			tokens[i] = corrected
		}
	}

	normalized := n.substitute(strings.Join(tokens, " "))

	return models.NormalizedInput{
		RawText:        raw,
		CleanedText:    cleaned,
		NormalizedText: normalized,
		Tokens:         strings.Fields(normalized),
		Corrections:    corrections,
	}
}

// substitute applies the phrase rules longest-first until the text
// reaches a fixed point, so normalizing an already-normalized string is
// a no-op. The iteration cap guards against pathological rule chains.
func (n *Normalizer) substitute(text string) string {
	for pass := 0; pass < 5; pass++ {
		prev := text
		for i := range n.dict.SubstitutionRules {
			rule := &n.dict.SubstitutionRules[i]
			text = rule.re.ReplaceAllString(text, rule.Replacement)
		}
		text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
		if text == prev {
			break
		}
	}
	return text
}

// CleanText lowercases, strips non-alphanumerics (keeping whitespace)
// and collapses runs of whitespace.
func CleanText(input string) string {
	s := strings.ToLower(input)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
