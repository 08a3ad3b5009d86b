package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"symptom-chatbot-backend/models"
	"symptom-chatbot-backend/utils"
)

// ErrNoRisks is returned when the recommender is called with an empty
// risk list. That is a pipeline-ordering bug in the caller, not a user
// error, so it fails loudly.
var ErrNoRisks = errors.New("specialist recommendation requires a non-empty risk list")

// MedicalService derives medical context, condition risks and a
// specialist recommendation from a completed profile. Pure rule tables,
// no I/O.
type MedicalService struct {
	dict *utils.MedicalDictionary
}

func NewMedicalService(dict *utils.MedicalDictionary) *MedicalService {
	return &MedicalService{dict: dict}
}

// BuildContext computes age group, BMI category and the gender, climate
// and severity tags for a completed profile.
func (m *MedicalService) BuildContext(age int, gender string, heightCm, weightKg float64, location string, symptoms []string) models.MedicalContext {
	var ageGroup models.AgeGroup
	switch {
	case age <= 12:
		ageGroup = models.AgeGroupChild
	case age <= 18:
		ageGroup = models.AgeGroupAdolescent
	case age <= 45:
		ageGroup = models.AgeGroupAdult
	case age <= 60:
		ageGroup = models.AgeGroupMiddleAged
	default:
		ageGroup = models.AgeGroupElderly
	}

	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*10) / 10

	var bmiCategory models.BMICategory
	switch {
	case bmi < 18.5:
		bmiCategory = models.BMIUnderweight
	case bmi < 25:
		bmiCategory = models.BMINormal
	case bmi < 30:
		bmiCategory = models.BMIOverweight
	default:
		bmiCategory = models.BMIObese
	}

	genderRisks := append([]string(nil), m.dict.GenderRisks[gender]...)
	climateRisks := append([]string(nil), m.dict.CityRisks[strings.ToLower(location)]...)

	symptomsText := strings.ToLower(strings.Join(symptoms, " "))
	var flags []string
	if ageGroup == models.AgeGroupElderly && strings.Contains(symptomsText, "chest") {
		flags = append(flags, models.FlagHighCardiacRisk)
	}
	if bmiCategory == models.BMIObese && strings.Contains(symptomsText, "breath") {
		flags = append(flags, models.FlagCardioRespiratoryRisk)
	}
	if ageGroup == models.AgeGroupChild && strings.Contains(symptomsText, "fever") {
		flags = append(flags, models.FlagPediatricAlert)
	}

	return models.MedicalContext{
		AgeGroup:      ageGroup,
		BMI:           bmi,
		BMICategory:   bmiCategory,
		GenderRisks:   genderRisks,
		ClimateRisks:  climateRisks,
		SeverityFlags: flags,
	}
}

// EvaluateDiseaseRisk maps symptom text plus medical context to a list
// of condition risks. Risks are only ever upgraded within a pass; output
// order is first-encounter insertion order.
func (m *MedicalService) EvaluateDiseaseRisk(mc models.MedicalContext, symptoms []string) []models.DiseaseRisk {
	var risks []models.DiseaseRisk
	symptomsText := strings.ToLower(strings.Join(symptoms, " "))

	addRisk := func(condition string, risk models.RiskLevel, reason string) {
		for i := range risks {
			if risks[i].Condition == condition {
				if risk.Priority() > risks[i].Risk.Priority() {
					risks[i].Risk = risk
					risks[i].Reason = reason
				}
				return
			}
		}
		risks = append(risks, models.DiseaseRisk{Condition: condition, Risk: risk, Reason: reason})
	}

	for _, sc := range m.dict.SymptomConditions {
		if strings.Contains(symptomsText, sc.Symptom) {
			for _, condition := range sc.Conditions {
				addRisk(condition, models.RiskMedium, fmt.Sprintf("Symptom %q reported", sc.Symptom))
			}
		}
	}

	if mc.AgeGroup == models.AgeGroupElderly && containsString(mc.SeverityFlags, models.FlagHighCardiacRisk) {
		addRisk("heart disease", models.RiskHigh, "Elderly patient with cardiac risk indicators")
	}
	if mc.BMICategory == models.BMIObese && strings.Contains(symptomsText, "breath") {
		addRisk("heart disease", models.RiskHigh, "Obesity with breathing difficulty")
	}
	if containsString(mc.ClimateRisks, "dengue") && strings.Contains(symptomsText, "fever") {
		addRisk("dengue", models.RiskMedium, "Fever in a dengue-prone region")
	}
	if containsString(mc.GenderRisks, "anemia") && strings.Contains(symptomsText, "fatigue") {
		addRisk("anemia", models.RiskMedium, "Fatigue with anemia risk factors")
	}

	return risks
}

// RecommendSpecialist maps the highest-priority risk to a specialist.
// The risk list must be non-empty; an empty list means the pipeline was
// invoked out of order.
func (m *MedicalService) RecommendSpecialist(risks []models.DiseaseRisk) (models.SpecialistRecommendation, error) {
	if len(risks) == 0 {
		return models.SpecialistRecommendation{}, ErrNoRisks
	}

	sorted := make([]models.DiseaseRisk, len(risks))
	copy(sorted, risks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Risk.Priority() > sorted[j].Risk.Priority()
	})

	top := sorted[0]
	specialist, ok := m.dict.ConditionToSpec[top.Condition]
	if !ok {
		specialist = "general physician"
	}

	return models.SpecialistRecommendation{
		Specialist: specialist,
		Confidence: top.Risk,
		Reason:     fmt.Sprintf("Recommended based on %s (%s risk)", top.Condition, top.Risk),
	}, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
