package models

// ConversationState is a node in the conversation state machine.
type ConversationState string

const (
	StateIdle                   ConversationState = "IDLE"
	StateHandleIntent           ConversationState = "HANDLE_INTENT"
	StateAskSymptoms            ConversationState = "ASK_SYMPTOMS"
	StateConfirmProfile         ConversationState = "CONFIRM_PROFILE"
	StateAskWhichProfileField   ConversationState = "ASK_WHICH_PROFILE_FIELD"
	StateUpdateProfileField     ConversationState = "UPDATE_PROFILE_FIELD"
	StateAskNewFieldValue       ConversationState = "ASK_NEW_FIELD_VALUE"
	StateAskAge                 ConversationState = "ASK_AGE"
	StateAskGender              ConversationState = "ASK_GENDER"
	StateAskHeight              ConversationState = "ASK_HEIGHT"
	StateAskWeight              ConversationState = "ASK_WEIGHT"
	StateAskLocation            ConversationState = "ASK_LOCATION"
	StateMedicalContextAnalysis ConversationState = "MEDICAL_CONTEXT_ANALYSIS"
	StateConfirmBooking         ConversationState = "CONFIRM_BOOKING"
	StateBookAppointment        ConversationState = "BOOK_APPOINTMENT"
	StateEmergencyFlow          ConversationState = "EMERGENCY_FLOW"
	StateEnd                    ConversationState = "END"
)

// IntentType classifies the purpose of a single user utterance.
type IntentType string

const (
	IntentGreeting        IntentType = "greeting"
	IntentThanks          IntentType = "thanks"
	IntentEmergency       IntentType = "emergency"
	IntentReportSymptom   IntentType = "report_symptom"
	IntentBookAppointment IntentType = "book_appointment"
	IntentUpdateProfile   IntentType = "update_profile"
	IntentYes             IntentType = "yes"
	IntentNo              IntentType = "no"
	IntentStop            IntentType = "stop"
	IntentOther           IntentType = "other"
)

// DetectedIntent is the classifier output for one turn. Confidence is
// advisory metadata; exactly one Type is assigned per utterance.
type DetectedIntent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence,omitempty"`
	Targets    []string   `json:"targets,omitempty"`
}

// NormalizedInput is the normalizer output, produced fresh per turn.
type NormalizedInput struct {
	RawText        string            `json:"raw_text"`
	CleanedText    string            `json:"cleaned_text"`
	NormalizedText string            `json:"normalized_text"`
	Tokens         []string          `json:"tokens"`
	Corrections    map[string]string `json:"corrections,omitempty"`
}

// ExtractedEntities holds the structured fields pulled out of normalized
// text. Zero values mean the entity was absent; extraction never fails.
type ExtractedEntities struct {
	Age       int      `json:"age,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Weight    float64  `json:"weight,omitempty"`
	Symptoms  []string `json:"symptoms,omitempty"`
	Duration  string   `json:"duration,omitempty"`
	Intensity string   `json:"intensity,omitempty"`
	Location  string   `json:"location,omitempty"`
	Raw       string   `json:"raw"`
}

// CollectedProfile is the profile being assembled turn by turn. Zero
// values mean not yet collected; confirmed values are only replaced
// through the explicit field-update flow.
type CollectedProfile struct {
	Age        int      `json:"age,omitempty" bson:"age,omitempty"`
	Gender     string   `json:"gender,omitempty" bson:"gender,omitempty"`
	Height     float64  `json:"height,omitempty" bson:"height,omitempty"`
	Weight     float64  `json:"weight,omitempty" bson:"weight,omitempty"`
	Location   string   `json:"location,omitempty" bson:"location,omitempty"`
	Symptoms   []string `json:"symptoms,omitempty" bson:"symptoms,omitempty"`
	Specialist string   `json:"specialist,omitempty" bson:"specialist,omitempty"`
}

// PatientProfile is a read-only seed from an external patient record.
type PatientProfile struct {
	Age     int     `json:"age,omitempty" bson:"age,omitempty"`
	Gender  string  `json:"gender,omitempty" bson:"gender,omitempty"`
	Height  float64 `json:"height,omitempty" bson:"height,omitempty"`
	Weight  float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Address string  `json:"address,omitempty" bson:"address,omitempty"`
}

// ConversationContext is the single-owner state threaded through every
// turn. Transitions replace it immutably; no component keeps a shared
// mutable reference.
type ConversationContext struct {
	State         ConversationState `json:"state" bson:"state"`
	Intent        IntentType        `json:"intent,omitempty" bson:"intent,omitempty"`
	Confidence    float64           `json:"confidence,omitempty" bson:"confidence,omitempty"`
	Collected     CollectedProfile  `json:"collected" bson:"collected"`
	PatientProfile *PatientProfile  `json:"patient_profile,omitempty" bson:"patient_profile,omitempty"`

	// FieldToUpdate is set only while the field-update flow is active.
	FieldToUpdate string `json:"field_to_update,omitempty" bson:"field_to_update,omitempty"`

	// LastAnalysisResult caches the external analysis response for
	// post-analysis yes/no branching.
	LastAnalysisResult *AnalysisResult `json:"last_analysis_result,omitempty" bson:"last_analysis_result,omitempty"`

	SessionID string `json:"session_id,omitempty" bson:"session_id,omitempty"`
}

// NewConversationContext returns the context a conversation starts with.
func NewConversationContext() ConversationContext {
	return ConversationContext{State: StateHandleIntent}
}

// RequiredProfileFields is the fixed order in which missing profile
// fields are collected.
var RequiredProfileFields = []string{"age", "gender", "height", "weight", "location"}

// HasProfileField reports whether the collected profile already holds a
// value for the named required field.
func (c *CollectedProfile) HasProfileField(field string) bool {
	switch field {
	case "age":
		return c.Age != 0
	case "gender":
		return c.Gender != ""
	case "height":
		return c.Height != 0
	case "weight":
		return c.Weight != 0
	case "location":
		return c.Location != ""
	}
	return false
}

// CloneSymptoms returns a copy of the symptom list so that appends on a
// derived context never alias the previous turn's slice.
func (c *CollectedProfile) CloneSymptoms() []string {
	if len(c.Symptoms) == 0 {
		return nil
	}
	out := make([]string, len(c.Symptoms))
	copy(out, c.Symptoms)
	return out
}
