package models

// Endpoints of the external risk-analysis collaborator. The core never
// calls them itself; it emits the payloads and the service shell owns
// the transport.
const (
	EndpointCreateSession = "/create-symptom-session/"
	EndpointAnalyze       = "/analyze-symptoms/"
)

// CreateSessionRequest is emitted when a symptom is first reported,
// before profile confirmation.
type CreateSessionRequest struct {
	Symptoms []string `json:"symptoms"`
	Age      int      `json:"age,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Weight   float64  `json:"weight,omitempty"`
	Location string   `json:"location,omitempty"`
}

// AnalyzeRequest is emitted from MEDICAL_CONTEXT_ANALYSIS. Symptoms are
// comma-joined per the collaborator's contract.
type AnalyzeRequest struct {
	Symptoms string  `json:"symptoms"`
	Age      int     `json:"age,omitempty"`
	Gender   string  `json:"gender,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
	Location string  `json:"location,omitempty"`
}

// BackendRequest is the handoff payload a turn may produce. Exactly one
// of CreateSession or Analyze is set, matching Endpoint.
type BackendRequest struct {
	Endpoint      string                `json:"endpoint"`
	CreateSession *CreateSessionRequest `json:"create_session,omitempty"`
	Analyze       *AnalyzeRequest       `json:"analyze,omitempty"`
}

// RecommendedDoctor is one doctor entry in an analysis result.
type RecommendedDoctor struct {
	FullName        string  `json:"full_name" bson:"full_name"`
	ClinicName      string  `json:"clinic_name,omitempty" bson:"clinic_name,omitempty"`
	Experience      int     `json:"experience,omitempty" bson:"experience,omitempty"`
	ConsultationFee float64 `json:"consultation_fee,omitempty" bson:"consultation_fee,omitempty"`
	Phone           string  `json:"phone,omitempty" bson:"phone,omitempty"`
}

// AnalysisResult is the inbound shape returned by the external analysis
// collaborator. All fields are optional.
type AnalysisResult struct {
	PossibleDiseases          []string            `json:"possible_diseases,omitempty" bson:"possible_diseases,omitempty"`
	Severity                  string              `json:"severity,omitempty" bson:"severity,omitempty"`
	Advice                    string              `json:"advice,omitempty" bson:"advice,omitempty"`
	RecommendedSpecialization string              `json:"recommended_specialization,omitempty" bson:"recommended_specialization,omitempty"`
	RecommendedDoctors        []RecommendedDoctor `json:"recommended_doctors,omitempty" bson:"recommended_doctors,omitempty"`
}
