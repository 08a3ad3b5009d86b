package models

// AgeGroup buckets a patient age; first matching bracket wins.
type AgeGroup string

const (
	AgeGroupChild      AgeGroup = "child"
	AgeGroupAdolescent AgeGroup = "adolescent"
	AgeGroupAdult      AgeGroup = "adult"
	AgeGroupMiddleAged AgeGroup = "middle_aged"
	AgeGroupElderly    AgeGroup = "elderly"
)

// BMICategory classifies body mass index.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// Severity flags raised by the medical context builder.
const (
	FlagHighCardiacRisk       = "HIGH_CARDIAC_RISK"
	FlagCardioRespiratoryRisk = "CARDIO_RESPIRATORY_RISK"
	FlagPediatricAlert        = "PEDIATRIC_ALERT"
)

// MedicalContext is the deterministic rule-table view of a completed
// profile plus symptom text.
type MedicalContext struct {
	AgeGroup      AgeGroup    `json:"age_group"`
	BMI           float64     `json:"bmi"`
	BMICategory   BMICategory `json:"bmi_category"`
	GenderRisks   []string    `json:"gender_risks"`
	ClimateRisks  []string    `json:"climate_risks"`
	SeverityFlags []string    `json:"severity_flags"`
}

// RiskLevel is the qualitative level of a condition risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Priority orders risk levels for upgrade and sorting decisions.
func (r RiskLevel) Priority() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// DiseaseRisk is one condition's accumulated risk. Within a single
// evaluation pass the level is only ever upgraded, never downgraded.
type DiseaseRisk struct {
	Condition string    `json:"condition"`
	Risk      RiskLevel `json:"risk"`
	Reason    string    `json:"reason"`
}

// SpecialistRecommendation maps the highest-priority disease risk to a
// specialist label. Confidence mirrors the top risk level.
type SpecialistRecommendation struct {
	Specialist string    `json:"specialist"`
	Confidence RiskLevel `json:"confidence"`
	Reason     string    `json:"reason"`
}
