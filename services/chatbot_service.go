package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"symptom-chatbot-backend/models"
	"symptom-chatbot-backend/utils"
)

// SessionStore persists conversation contexts between turns.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionRecord, error)
	Save(ctx context.Context, record *models.SessionRecord) error
}

// MessageStore persists processed turns.
type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) error
	BySession(ctx context.Context, sessionID string, limit int64) ([]models.Message, error)
}

// AnalysisBackend is the external risk-analysis collaborator.
type AnalysisBackend interface {
	CreateSession(ctx context.Context, req models.CreateSessionRequest) error
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error)
}

// TraceFunc receives intermediate pipeline results (normalized input,
// entities, intent, transitions). Nil disables tracing; the pipeline
// itself stays side-effect-free.
type TraceFunc func(stage string, payload interface{})

// TurnResult is the outcome of one pure conversation turn.
type TurnResult struct {
	Reply          string
	Context        models.ConversationContext
	Intent         models.DetectedIntent
	BackendRequest *models.BackendRequest
	Action         *models.Action
}

// ChatbotService runs the symptom-intake pipeline: normalize, extract,
// classify, transition, and analyze once the profile is complete.
// ProcessTurn is pure; ProcessMessage is the stateful shell that owns
// persistence and the external analysis call.
type ChatbotService struct {
	normalizer   *utils.Normalizer
	extractor    *utils.EntityExtractor
	classifier   *utils.IntentClassifier
	conversation *ConversationService
	medical      *MedicalService

	sessions   SessionStore
	messages   MessageStore
	backend    AnalysisBackend
	sessionTTL time.Duration
	trace      TraceFunc
}

func NewChatbotService(dict *utils.MedicalDictionary, sessions SessionStore, messages MessageStore, backend AnalysisBackend) *ChatbotService {
	return &ChatbotService{
		normalizer:   utils.NewNormalizer(dict),
		extractor:    utils.NewEntityExtractor(dict),
		classifier:   utils.NewIntentClassifier(dict),
		conversation: NewConversationService(dict),
		medical:      NewMedicalService(dict),
		sessions:     sessions,
		messages:     messages,
		backend:      backend,
		sessionTTL:   24 * time.Hour,
	}
}

// SetTrace installs an observability hook for intermediate results.
func (s *ChatbotService) SetTrace(fn TraceFunc) { s.trace = fn }

// SetSessionTTL overrides how long idle sessions are retained.
func (s *ChatbotService) SetSessionTTL(ttl time.Duration) {
	if ttl > 0 {
		s.sessionTTL = ttl
	}
}

func (s *ChatbotService) emit(stage string, payload interface{}) {
	if s.trace != nil {
		s.trace(stage, payload)
	}
}

// valueStates are states whose next input is a direct answer; intent
// shortcuts are suspended there so answers like "45" or "my height"
// reach the state machine untouched.
var valueStates = map[models.ConversationState]bool{
	models.StateAskAge:               true,
	models.StateAskGender:            true,
	models.StateAskHeight:            true,
	models.StateAskWeight:            true,
	models.StateAskLocation:          true,
	models.StateAskNewFieldValue:     true,
	models.StateUpdateProfileField:   true,
	models.StateAskWhichProfileField: true,
	models.StateConfirmBooking:       true,
}

// ProcessTurn processes one utterance against the previous context and
// returns the reply, the replacement context and any backend handoff
// payload. It performs no I/O.
func (s *ChatbotService) ProcessTurn(userMessage string, prev models.ConversationContext) TurnResult {
	normalized := s.normalizer.Normalize(userMessage)
	s.emit("normalize", normalized)

	entities := s.extractor.Extract(normalized.NormalizedText)
	s.emit("entities", entities)

	intent := s.classifier.DetectIntent(normalized, entities)
	s.emit("intent", intent)

	interrupt := intent.Type == models.IntentEmergency || intent.Type == models.IntentStop

	// A pending symptom prompt consumes the whole utterance as the
	// symptom description, whatever the classifier thought of it.
	if prev.State == models.StateAskSymptoms && !interrupt {
		return s.recordSymptom(prev, normalized, intent)
	}

	if !valueStates[prev.State] && !interrupt && prev.State != models.StateEmergencyFlow {
		switch intent.Type {
		case models.IntentUpdateProfile:
			return s.startFieldUpdate(prev, intent)
		case models.IntentReportSymptom:
			return s.recordSymptom(prev, normalized, intent)
		case models.IntentGreeting:
			return TurnResult{
				Reply:   "Hi! How can I help you today? You can describe your symptoms, update your profile, or look for a specialist.",
				Context: prev,
				Intent:  intent,
			}
		case models.IntentThanks:
			return TurnResult{
				Reply:   "You're welcome! Feel free to ask if you need anything else.",
				Context: prev,
				Intent:  intent,
			}
		case models.IntentBookAppointment:
			if specialist := s.specialistFor(normalized, prev); specialist != "" {
				return TurnResult{
					Reply:   fmt.Sprintf("Let me help you find a %s.", specialist),
					Context: prev,
					Intent:  intent,
					Action:  findDoctorsAction(specialist),
				}
			}
		}
	}

	next := s.conversation.Transition(prev, intent, userMessage)
	s.emit("transition", next.State)
	return s.buildReply(prev, next, intent)
}

// recordSymptom notes the utterance as a symptom, seeds missing profile
// fields from the patient record and asks for confirmation. Emits the
// create-session handoff on the first reported symptom.
func (s *ChatbotService) recordSymptom(prev models.ConversationContext, normalized models.NormalizedInput, intent models.DetectedIntent) TurnResult {
	next := prev
	next.Intent = intent.Type
	next.Confidence = intent.Confidence
	next.State = models.StateConfirmProfile

	firstSymptom := len(prev.Collected.Symptoms) == 0

	if p := prev.PatientProfile; p != nil {
		c := &next.Collected
		if c.Age == 0 {
			c.Age = p.Age
		}
		if c.Gender == "" {
			c.Gender = p.Gender
		}
		if c.Height == 0 {
			c.Height = p.Height
		}
		if c.Weight == 0 {
			c.Weight = p.Weight
		}
		if c.Location == "" {
			c.Location = p.Address
		}
	}

	symptom := strings.TrimSpace(normalized.NormalizedText)
	if symptom == "" {
		symptom = strings.TrimSpace(normalized.RawText)
	}
	if symptom != "" {
		symptoms := next.Collected.CloneSymptoms()
		next.Collected.Symptoms = append(symptoms, symptom)
	}

	reply := "Okay, I've noted your symptom.\nFor better analysis, please confirm your profile details.\n\n" +
		profileSummary(next.Collected)

	result := TurnResult{Reply: reply, Context: next, Intent: intent}
	if firstSymptom {
		c := next.Collected
		result.BackendRequest = &models.BackendRequest{
			Endpoint: models.EndpointCreateSession,
			CreateSession: &models.CreateSessionRequest{
				Symptoms: c.CloneSymptoms(),
				Age:      c.Age,
				Gender:   c.Gender,
				Height:   c.Height,
				Weight:   c.Weight,
				Location: c.Location,
			},
		}
	}
	return result
}

// startFieldUpdate routes an explicit update-profile intent. A named
// field jumps straight to value entry; otherwise ask which field.
func (s *ChatbotService) startFieldUpdate(prev models.ConversationContext, intent models.DetectedIntent) TurnResult {
	next := prev
	next.Intent = intent.Type
	next.Confidence = intent.Confidence

	for _, target := range intent.Targets {
		if field, ok := utils.MatchProfileField(target); ok {
			next.State = models.StateAskNewFieldValue
			next.FieldToUpdate = field
			return TurnResult{
				Reply:   newValuePrompt(field),
				Context: next,
				Intent:  intent,
			}
		}
	}

	next.State = models.StateAskWhichProfileField
	return TurnResult{
		Reply:   s.conversation.Prompt(models.StateAskWhichProfileField),
		Context: next,
		Intent:  intent,
	}
}

// buildReply turns a state transition into the user-facing reply, and
// triggers the analysis stage when the profile is complete.
func (s *ChatbotService) buildReply(prev, next models.ConversationContext, intent models.DetectedIntent) TurnResult {
	result := TurnResult{Context: next, Intent: intent}

	switch {
	case next.State == models.StateEmergencyFlow:
		result.Reply = s.conversation.Prompt(models.StateEmergencyFlow)

	case next.State == models.StateEnd:
		if prev.State == models.StateConfirmBooking {
			result.Reply = "Okay, no appointment booked. " + s.conversation.Prompt(models.StateEnd)
		} else {
			result.Reply = s.conversation.Prompt(models.StateEnd)
		}

	case next.State == models.StateBookAppointment:
		specialist := next.Collected.Specialist
		if specialist == "" {
			specialist = "general physician"
		}
		result.Reply = fmt.Sprintf("Let me help you book an appointment with a %s.", specialist)
		result.Action = findDoctorsAction(specialist)

	case prev.State == models.StateAskAge, prev.State == models.StateAskGender,
		prev.State == models.StateAskHeight, prev.State == models.StateAskWeight,
		prev.State == models.StateAskLocation:
		if next.State == prev.State {
			result.Reply = s.conversation.Reprompt(prev.State)
			break
		}
		// Captured; re-evaluate remaining gaps from CONFIRM_PROFILE.
		return s.advanceProfile(next, intent, "Got it. ")

	case prev.State == models.StateAskWhichProfileField, prev.State == models.StateUpdateProfileField:
		if next.State == models.StateAskNewFieldValue {
			result.Reply = newValuePrompt(next.FieldToUpdate)
		} else {
			result.Reply = s.conversation.Reprompt(prev.State)
		}

	case prev.State == models.StateAskNewFieldValue:
		if next.State != models.StateConfirmProfile {
			result.Reply = fmt.Sprintf("Please provide a valid %s.", prev.FieldToUpdate)
			break
		}
		if intent.Type == models.IntentNo {
			result.Reply = "Okay, let's keep your current profile details.\n\n" + profileSummary(next.Collected)
		} else {
			result.Reply = "Here are your updated details:\n" + profileSummary(next.Collected)
		}

	case prev.State == models.StateConfirmProfile:
		switch next.State {
		case models.StateUpdateProfileField:
			result.Reply = "Okay. Which field is incorrect?\n(age / gender / height / weight / location)"
		case models.StateAskWhichProfileField:
			result.Reply = s.conversation.Prompt(models.StateAskWhichProfileField)
		case models.StateMedicalContextAnalysis:
			return s.runAnalysis(next, intent)
		default:
			result.Reply = s.conversation.Prompt(next.State)
		}

	case next.State == models.StateAskSymptoms:
		result.Reply = s.conversation.Prompt(models.StateAskSymptoms)

	case next.State == models.StateMedicalContextAnalysis:
		return s.runAnalysis(next, intent)

	case next.State == models.StateIdle:
		if intent.Type == models.IntentOther {
			result.Reply = "I'm sorry, I didn't understand that. I can help you with:\n\n" +
				"- Reporting symptoms (fever, cough, headache, ...)\n" +
				"- Updating your profile (age, gender, height, weight, location)\n" +
				"- Booking appointments with specialists\n\n" +
				"Please try rephrasing your message."
		} else {
			result.Reply = "I'm here to help! Please tell me about your symptoms or ask about booking an appointment."
		}

	default:
		result.Reply = s.conversation.Prompt(next.State)
	}

	return result
}

// advanceProfile re-runs the CONFIRM_PROFILE gap evaluation after a
// field was captured, prompting for the next missing field or moving
// on to analysis.
func (s *ChatbotService) advanceProfile(ctx models.ConversationContext, intent models.DetectedIntent, prefix string) TurnResult {
	next := s.conversation.Transition(ctx, models.DetectedIntent{Type: models.IntentOther}, "")
	next.Intent = intent.Type
	next.Confidence = intent.Confidence
	s.emit("transition", next.State)

	if next.State == models.StateMedicalContextAnalysis {
		return s.runAnalysis(next, intent)
	}
	return TurnResult{
		Reply:   prefix + s.conversation.Prompt(next.State),
		Context: next,
		Intent:  intent,
	}
}

// runAnalysis enters MEDICAL_CONTEXT_ANALYSIS: derives the medical
// context, evaluates disease risks, records the local specialist
// recommendation and emits the analyze handoff payload.
func (s *ChatbotService) runAnalysis(ctx models.ConversationContext, intent models.DetectedIntent) TurnResult {
	c := ctx.Collected
	mc := s.medical.BuildContext(c.Age, c.Gender, c.Height, c.Weight, c.Location, c.Symptoms)
	s.emit("medical_context", mc)

	risks := s.medical.EvaluateDiseaseRisk(mc, c.Symptoms)
	s.emit("disease_risks", risks)

	reply := "Great. I'll proceed with the analysis."
	if len(risks) > 0 {
		rec, err := s.medical.RecommendSpecialist(risks)
		if err == nil {
			ctx.Collected.Specialist = rec.Specialist
			reply += fmt.Sprintf("\n\nPreliminary assessment: %s. A %s may be the right fit (%s confidence).",
				rec.Reason, rec.Specialist, rec.Confidence)
		}
	}

	return TurnResult{
		Reply:   reply,
		Context: ctx,
		Intent:  intent,
		BackendRequest: &models.BackendRequest{
			Endpoint: models.EndpointAnalyze,
			Analyze: &models.AnalyzeRequest{
				Symptoms: strings.Join(c.Symptoms, ", "),
				Age:      c.Age,
				Gender:   c.Gender,
				Height:   c.Height,
				Weight:   c.Weight,
				Location: c.Location,
			},
		},
	}
}

// ApplyAnalysisResult folds the external analysis response back into
// the conversation and moves it to booking confirmation. A nil result
// falls back to the locally recommended specialist. Pure.
func (s *ChatbotService) ApplyAnalysisResult(ctx models.ConversationContext, result *models.AnalysisResult) (models.ConversationContext, string) {
	next := ctx
	next.State = models.StateConfirmBooking

	specialist := next.Collected.Specialist
	var parts []string
	if result != nil {
		next.LastAnalysisResult = result
		if result.RecommendedSpecialization != "" {
			specialist = result.RecommendedSpecialization
			next.Collected.Specialist = specialist
		}
		if len(result.PossibleDiseases) > 0 {
			parts = append(parts, fmt.Sprintf("Possible conditions: %s.", strings.Join(result.PossibleDiseases, ", ")))
		}
		if result.Severity != "" {
			parts = append(parts, fmt.Sprintf("Severity: %s.", result.Severity))
		}
		if result.Advice != "" {
			parts = append(parts, result.Advice)
		}
	}
	if specialist == "" {
		specialist = "general physician"
	}
	parts = append(parts, fmt.Sprintf("I recommend consulting a %s. Would you like to book an appointment? (yes / no)", specialist))

	return next, strings.Join(parts, "\n")
}

// ProcessMessage is the stateful entry point used by the HTTP and
// websocket controllers: it loads the session context, runs the pure
// turn, dispatches any backend handoff and persists the outcome.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conv := models.NewConversationContext()
	conv.SessionID = sessionID
	if s.sessions != nil {
		record, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
		}
		if record != nil {
			conv = record.Context
		}
	}
	if req.Profile != nil && conv.PatientProfile == nil {
		conv.PatientProfile = req.Profile
	}

	result := s.ProcessTurn(req.Message, conv)
	reply := result.Reply
	next := result.Context

	if result.BackendRequest != nil {
		next, reply = s.dispatchBackend(ctx, result.BackendRequest, next, reply)
	}

	now := time.Now()
	if s.sessions != nil {
		record := &models.SessionRecord{
			SessionID:    sessionID,
			UserID:       req.UserID,
			Channel:      req.Channel,
			Context:      next,
			LastActivity: now,
			CreatedAt:    now,
			ExpiresAt:    now.Add(s.sessionTTL),
		}
		if err := s.sessions.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save session %s: %w", sessionID, err)
		}
	}

	messageID := uuid.NewString()
	if s.messages != nil {
		msg := &models.Message{
			MessageID:   messageID,
			SessionID:   sessionID,
			UserMessage: req.Message,
			BotResponse: reply,
			Intent:      result.Intent.Type,
			State:       next.State,
			Timestamp:   now,
			UserID:      req.UserID,
			Channel:     req.Channel,
		}
		if err := s.messages.Insert(ctx, msg); err != nil {
			log.Printf("failed to store message for session %s: %v", sessionID, err)
		}
	}

	return &models.ChatResponse{
		Response:       reply,
		Intent:         result.Intent.Type,
		State:          next.State,
		SessionID:      sessionID,
		MessageID:      messageID,
		Action:         result.Action,
		BackendRequest: result.BackendRequest,
	}, nil
}

// dispatchBackend forwards a handoff payload to the analysis
// collaborator. Backend failures degrade to the local assessment; they
// never fail the turn.
func (s *ChatbotService) dispatchBackend(ctx context.Context, req *models.BackendRequest, conv models.ConversationContext, reply string) (models.ConversationContext, string) {
	switch req.Endpoint {
	case models.EndpointCreateSession:
		if s.backend != nil && req.CreateSession != nil {
			if err := s.backend.CreateSession(ctx, *req.CreateSession); err != nil {
				log.Printf("create-session request failed: %v", err)
			}
		}

	case models.EndpointAnalyze:
		var analysis *models.AnalysisResult
		if s.backend != nil && req.Analyze != nil {
			res, err := s.backend.Analyze(ctx, *req.Analyze)
			if err != nil {
				log.Printf("analyze request failed, using local assessment: %v", err)
			} else {
				analysis = res
			}
		}
		next, extra := s.ApplyAnalysisResult(conv, analysis)
		return next, reply + "\n\n" + extra
	}
	return conv, reply
}

// History returns the stored turns for a session, newest first.
func (s *ChatbotService) History(ctx context.Context, sessionID string, limit int64) ([]models.Message, error) {
	if s.messages == nil {
		return nil, nil
	}
	return s.messages.BySession(ctx, sessionID, limit)
}

func (s *ChatbotService) specialistFor(normalized models.NormalizedInput, ctx models.ConversationContext) string {
	for _, sp := range []string{
		"dermatologist", "cardiologist", "orthopedic", "ophthalmologist",
		"gynecologist", "pulmonologist", "general physician",
	} {
		if strings.Contains(normalized.NormalizedText, sp) {
			return sp
		}
	}
	if ctx.LastAnalysisResult != nil && ctx.LastAnalysisResult.RecommendedSpecialization != "" {
		return ctx.LastAnalysisResult.RecommendedSpecialization
	}
	return ctx.Collected.Specialist
}

func findDoctorsAction(specialist string) *models.Action {
	return &models.Action{
		Type:  "find_doctors",
		Label: "Find Nearby Doctors",
		URL:   "/doctor_consultation?specialization=" + url.QueryEscape(specialist),
	}
}

func newValuePrompt(field string) string {
	switch field {
	case "age":
		return "Please enter your new age."
	case "gender":
		return "Please enter your new gender (male / female / trans)."
	case "height":
		return "Please enter your new height in cm."
	case "weight":
		return "Please enter your new weight in kg."
	case "location":
		return "Please enter your new location."
	}
	return "Please enter the new value."
}

func profileSummary(c models.CollectedProfile) string {
	orNot := func(v string) string {
		if v == "" {
			return "Not provided"
		}
		return v
	}
	num := func(v float64) string {
		if v == 0 {
			return "Not provided"
		}
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
	}
	age := "Not provided"
	if c.Age != 0 {
		age = fmt.Sprintf("%d", c.Age)
	}
	return fmt.Sprintf(
		"Here are your details:\nAge: %s\nGender: %s\nHeight: %s\nWeight: %s\nLocation: %s\n\nAre these correct? (yes / no)",
		age, orNot(c.Gender), num(c.Height), num(c.Weight), orNot(c.Location),
	)
}
