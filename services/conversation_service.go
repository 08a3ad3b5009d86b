package services

import (
	"strings"

	"symptom-chatbot-backend/models"
	"symptom-chatbot-backend/utils"
)

// ConversationService is the conversation state machine. Transition is
// a pure function of (previous context, intent, raw text) — no I/O, no
// hidden state; each turn returns a fresh context value.
type ConversationService struct {
	dict *utils.MedicalDictionary
}

func NewConversationService(dict *utils.MedicalDictionary) *ConversationService {
	return &ConversationService{dict: dict}
}

// MissingProfileFields returns the required fields not yet collected,
// in the fixed collection order: age, gender, height, weight, location.
func (s *ConversationService) MissingProfileFields(ctx models.ConversationContext) []string {
	var missing []string
	for _, field := range models.RequiredProfileFields {
		if !ctx.Collected.HasProfileField(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// Transition advances the conversation one step. Invalid user input
// never corrupts the collected profile: the machine holds state and the
// caller re-prompts.
func (s *ConversationService) Transition(ctx models.ConversationContext, intent models.DetectedIntent, rawText string) models.ConversationContext {
	next := ctx
	next.Intent = intent.Type
	next.Confidence = intent.Confidence

	// A conversation in the emergency flow ends on any further input.
	if ctx.State == models.StateEmergencyFlow {
		next.State = models.StateEnd
		return next
	}

	// Emergency and stop interrupt every state.
	if intent.Type == models.IntentEmergency {
		next.State = models.StateEmergencyFlow
		return next
	}
	if intent.Type == models.IntentStop {
		next.State = models.StateEnd
		return next
	}

	switch ctx.State {

	case models.StateIdle, models.StateHandleIntent:
		switch intent.Type {
		case models.IntentReportSymptom, models.IntentBookAppointment:
			next.State = models.StateAskSymptoms
		case models.IntentUpdateProfile:
			next.State = models.StateConfirmProfile
		default:
			next.State = models.StateIdle
		}

	case models.StateAskSymptoms:
		if symptom := strings.TrimSpace(rawText); symptom != "" {
			symptoms := next.Collected.CloneSymptoms()
			next.Collected.Symptoms = append(symptoms, symptom)
			next.State = models.StateConfirmProfile
		}

	case models.StateConfirmProfile:
		if intent.Type == models.IntentUpdateProfile {
			next.State = models.StateAskWhichProfileField
			break
		}
		if intent.Type == models.IntentNo {
			next.State = models.StateUpdateProfileField
			break
		}
		missing := s.MissingProfileFields(ctx)
		if len(missing) == 0 {
			next.State = models.StateMedicalContextAnalysis
			break
		}
		next.State = askStateFor(missing[0])

	case models.StateAskAge:
		if age, ok := utils.ParseAge(rawText); ok {
			next.Collected.Age = age
			next.State = models.StateConfirmProfile
		}

	case models.StateAskGender:
		if gender := s.dict.NormalizeGender(rawText); gender != "" {
			next.Collected.Gender = gender
			next.State = models.StateConfirmProfile
		}

	case models.StateAskHeight:
		if height, ok := utils.ParseHeight(rawText); ok {
			next.Collected.Height = height
			next.State = models.StateConfirmProfile
		}

	case models.StateAskWeight:
		if weight, ok := utils.ParseWeight(rawText); ok {
			next.Collected.Weight = weight
			next.State = models.StateConfirmProfile
		}

	case models.StateAskLocation:
		if location, ok := utils.ParseLocation(rawText); ok {
			next.Collected.Location = location
			next.State = models.StateConfirmProfile
		}

	case models.StateAskWhichProfileField, models.StateUpdateProfileField:
		if field, ok := utils.MatchProfileField(rawText); ok {
			next.FieldToUpdate = field
			next.State = models.StateAskNewFieldValue
		}

	case models.StateAskNewFieldValue:
		if intent.Type == models.IntentNo {
			next.FieldToUpdate = ""
			next.State = models.StateConfirmProfile
			break
		}
		if s.applyFieldUpdate(&next, rawText) {
			next.FieldToUpdate = ""
			next.State = models.StateConfirmProfile
		}

	case models.StateConfirmBooking:
		if intent.Type == models.IntentYes {
			next.State = models.StateBookAppointment
		} else {
			next.State = models.StateEnd
		}

	case models.StateBookAppointment:
		next.State = models.StateEnd

	case models.StateMedicalContextAnalysis, models.StateEnd:
		// MEDICAL_CONTEXT_ANALYSIS is resumed externally; END is
		// terminal.
	}

	return next
}

// applyFieldUpdate validates rawText against the pending field's
// validator and stores it on success.
func (s *ConversationService) applyFieldUpdate(ctx *models.ConversationContext, rawText string) bool {
	switch ctx.FieldToUpdate {
	case "age":
		if age, ok := utils.ParseAge(rawText); ok {
			ctx.Collected.Age = age
			return true
		}
	case "gender":
		if gender := s.dict.NormalizeGender(rawText); gender != "" {
			ctx.Collected.Gender = gender
			return true
		}
	case "height":
		if height, ok := utils.ParseHeight(rawText); ok {
			ctx.Collected.Height = height
			return true
		}
	case "weight":
		if weight, ok := utils.ParseWeight(rawText); ok {
			ctx.Collected.Weight = weight
			return true
		}
	case "location":
		if location, ok := utils.ParseLocation(rawText); ok {
			ctx.Collected.Location = location
			return true
		}
	}
	return false
}

func askStateFor(field string) models.ConversationState {
	switch field {
	case "age":
		return models.StateAskAge
	case "gender":
		return models.StateAskGender
	case "height":
		return models.StateAskHeight
	case "weight":
		return models.StateAskWeight
	case "location":
		return models.StateAskLocation
	}
	return models.StateConfirmProfile
}

// Prompt returns the question or message the bot asks on entering a
// state.
func (s *ConversationService) Prompt(state models.ConversationState) string {
	switch state {
	case models.StateIdle, models.StateHandleIntent:
		return "Hi! How can I help you today?"
	case models.StateAskSymptoms:
		return "Please describe the symptoms you are experiencing."
	case models.StateConfirmProfile:
		return "Before proceeding, I want to confirm your profile details."
	case models.StateAskWhichProfileField, models.StateUpdateProfileField:
		return "Which detail would you like to update? Age, Gender, Height, Weight, or Location?"
	case models.StateAskAge:
		return "May I know your age?"
	case models.StateAskGender:
		return "Please tell me your gender (male / female / trans)."
	case models.StateAskHeight:
		return "What is your height in cm?"
	case models.StateAskWeight:
		return "What is your weight in kg?"
	case models.StateAskLocation:
		return "Which city are you currently in?"
	case models.StateMedicalContextAnalysis:
		return "Thanks. I'm analyzing your details now."
	case models.StateConfirmBooking:
		return "Would you like to book an appointment with the recommended specialist? (yes / no)"
	case models.StateBookAppointment:
		return "Great, let's get your appointment booked."
	case models.StateEmergencyFlow:
		return "This seems like a medical emergency. Please call emergency services or visit the nearest emergency room immediately."
	case models.StateEnd:
		return "Is there anything else I can help you with?"
	}
	return "Let me check that for you."
}

// Reprompt returns the corrective message for invalid input in an
// input-collecting state.
func (s *ConversationService) Reprompt(state models.ConversationState) string {
	switch state {
	case models.StateAskAge:
		return "Please enter a valid age (1-119)."
	case models.StateAskGender:
		return "Please enter a valid gender (male / female / trans)."
	case models.StateAskHeight:
		return "Please enter a valid height in cm (30-300)."
	case models.StateAskWeight:
		return "Please enter a valid weight in kg (2-600)."
	case models.StateAskLocation:
		return "Please enter a valid city or location."
	case models.StateAskWhichProfileField, models.StateUpdateProfileField:
		return "Please choose a valid field: age, gender, height, weight, or location."
	}
	return "Sorry, I didn't catch that. Could you rephrase?"
}
