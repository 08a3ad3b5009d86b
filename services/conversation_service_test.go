package services

import (
	"reflect"
	"testing"

	"symptom-chatbot-backend/models"
	"symptom-chatbot-backend/utils"
)

func newTestDictionary(t *testing.T) *utils.MedicalDictionary {
	t.Helper()
	dict, err := utils.NewMedicalDictionary()
	if err != nil {
		t.Fatalf("NewMedicalDictionary() error: %v", err)
	}
	return dict
}

func intentOf(typ models.IntentType) models.DetectedIntent {
	return models.DetectedIntent{Type: typ, Confidence: 0.9}
}

func TestMissingProfileFields(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	got := s.MissingProfileFields(ctx)
	want := []string{"age", "gender", "height", "weight", "location"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingProfileFields() = %v, want %v", got, want)
	}

	ctx.Collected.Age = 30
	ctx.Collected.Height = 170
	got = s.MissingProfileFields(ctx)
	want = []string{"gender", "weight", "location"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingProfileFields() = %v, want %v", got, want)
	}
}

func TestTransitionIntentRouting(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	tests := []struct {
		intent models.IntentType
		want   models.ConversationState
	}{
		{models.IntentReportSymptom, models.StateAskSymptoms},
		{models.IntentBookAppointment, models.StateAskSymptoms},
		{models.IntentUpdateProfile, models.StateConfirmProfile},
		{models.IntentGreeting, models.StateIdle},
		{models.IntentOther, models.StateIdle},
	}

	for _, tt := range tests {
		ctx := models.NewConversationContext()
		next := s.Transition(ctx, intentOf(tt.intent), "")
		if next.State != tt.want {
			t.Errorf("Transition(HANDLE_INTENT, %s) = %s, want %s", tt.intent, next.State, tt.want)
		}
	}
}

func TestTransitionAskSymptoms(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	ctx.State = models.StateAskSymptoms

	next := s.Transition(ctx, intentOf(models.IntentOther), "fever and headache")
	if next.State != models.StateConfirmProfile {
		t.Fatalf("state = %s, want %s", next.State, models.StateConfirmProfile)
	}
	if !reflect.DeepEqual(next.Collected.Symptoms, []string{"fever and headache"}) {
		t.Errorf("Symptoms = %v", next.Collected.Symptoms)
	}

	// blank input holds the state
	next = s.Transition(ctx, intentOf(models.IntentOther), "   ")
	if next.State != models.StateAskSymptoms {
		t.Errorf("state = %s, want %s", next.State, models.StateAskSymptoms)
	}
}

// The profile interview asks for missing fields in fixed order and
// returns to CONFIRM_PROFILE after each capture.
func TestTransitionProfileInterview(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	ctx.State = models.StateConfirmProfile

	steps := []struct {
		answer    string
		nextAsk   models.ConversationState
		wantField func(c models.CollectedProfile) bool
	}{
		{"25", models.StateAskAge, func(c models.CollectedProfile) bool { return c.Age == 25 }},
		{"female", models.StateAskGender, func(c models.CollectedProfile) bool { return c.Gender == "female" }},
		{"165", models.StateAskHeight, func(c models.CollectedProfile) bool { return c.Height == 165 }},
		{"60", models.StateAskWeight, func(c models.CollectedProfile) bool { return c.Weight == 60 }},
		{"mumbai", models.StateAskLocation, func(c models.CollectedProfile) bool { return c.Location == "mumbai" }},
	}

	for _, step := range steps {
		ctx = s.Transition(ctx, intentOf(models.IntentYes), "yes")
		if ctx.State != step.nextAsk {
			t.Fatalf("expected %s, got %s", step.nextAsk, ctx.State)
		}
		ctx = s.Transition(ctx, intentOf(models.IntentOther), step.answer)
		if ctx.State != models.StateConfirmProfile {
			t.Fatalf("after answering %q: state = %s, want %s", step.answer, ctx.State, models.StateConfirmProfile)
		}
		if !step.wantField(ctx.Collected) {
			t.Fatalf("after answering %q: field not stored, collected = %+v", step.answer, ctx.Collected)
		}
	}

	// all fields collected: confirmation moves to analysis
	ctx = s.Transition(ctx, intentOf(models.IntentYes), "yes")
	if ctx.State != models.StateMedicalContextAnalysis {
		t.Errorf("state = %s, want %s", ctx.State, models.StateMedicalContextAnalysis)
	}
}

func TestTransitionInvalidInputHoldsState(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	tests := []struct {
		state models.ConversationState
		input string
	}{
		{models.StateAskAge, "abc"},
		{models.StateAskAge, "150"},
		{models.StateAskGender, "dunno"},
		{models.StateAskHeight, "15"},
		{models.StateAskWeight, "900"},
		{models.StateAskLocation, "x"},
	}

	for _, tt := range tests {
		ctx := models.NewConversationContext()
		ctx.State = tt.state
		next := s.Transition(ctx, intentOf(models.IntentOther), tt.input)
		if next.State != tt.state {
			t.Errorf("Transition(%s, %q) = %s, want state held", tt.state, tt.input, next.State)
		}
		if !reflect.DeepEqual(next.Collected, models.CollectedProfile{}) {
			t.Errorf("Transition(%s, %q) stored invalid input: %+v", tt.state, tt.input, next.Collected)
		}
	}
}

func TestTransitionFieldUpdateFlow(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	ctx.State = models.StateConfirmProfile
	ctx.Collected = models.CollectedProfile{
		Age: 30, Gender: "male", Height: 180, Weight: 80, Location: "pune",
	}

	// "no" at confirmation opens the field-update flow
	ctx = s.Transition(ctx, intentOf(models.IntentNo), "no")
	if ctx.State != models.StateUpdateProfileField {
		t.Fatalf("state = %s, want %s", ctx.State, models.StateUpdateProfileField)
	}

	ctx = s.Transition(ctx, intentOf(models.IntentOther), "my height")
	if ctx.State != models.StateAskNewFieldValue || ctx.FieldToUpdate != "height" {
		t.Fatalf("state = %s, field = %q", ctx.State, ctx.FieldToUpdate)
	}

	ctx = s.Transition(ctx, intentOf(models.IntentOther), "175")
	if ctx.State != models.StateConfirmProfile {
		t.Fatalf("state = %s, want %s", ctx.State, models.StateConfirmProfile)
	}
	if ctx.Collected.Height != 175 {
		t.Errorf("Height = %v, want 175", ctx.Collected.Height)
	}
	if ctx.FieldToUpdate != "" {
		t.Errorf("FieldToUpdate = %q, want cleared", ctx.FieldToUpdate)
	}
}

func TestTransitionFieldUpdateCancel(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	ctx.State = models.StateAskNewFieldValue
	ctx.FieldToUpdate = "weight"
	ctx.Collected.Weight = 80

	next := s.Transition(ctx, intentOf(models.IntentNo), "no")
	if next.State != models.StateConfirmProfile {
		t.Fatalf("state = %s, want %s", next.State, models.StateConfirmProfile)
	}
	if next.Collected.Weight != 80 {
		t.Errorf("Weight = %v, want unchanged 80", next.Collected.Weight)
	}
	if next.FieldToUpdate != "" {
		t.Errorf("FieldToUpdate = %q, want cleared", next.FieldToUpdate)
	}
}

// Emergency interrupts every state, and any input after the emergency
// message ends the conversation.
func TestTransitionEmergencyInterrupts(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	states := []models.ConversationState{
		models.StateIdle,
		models.StateAskSymptoms,
		models.StateConfirmProfile,
		models.StateAskHeight,
		models.StateAskNewFieldValue,
		models.StateConfirmBooking,
	}

	for _, state := range states {
		ctx := models.NewConversationContext()
		ctx.State = state
		next := s.Transition(ctx, models.DetectedIntent{Type: models.IntentEmergency, Confidence: 1.0}, "severe chest pain")
		if next.State != models.StateEmergencyFlow {
			t.Errorf("Transition(%s, emergency) = %s, want %s", state, next.State, models.StateEmergencyFlow)
		}
	}

	ctx := models.NewConversationContext()
	ctx.State = models.StateEmergencyFlow
	next := s.Transition(ctx, intentOf(models.IntentOther), "ok")
	if next.State != models.StateEnd {
		t.Errorf("Transition(EMERGENCY_FLOW, any) = %s, want %s", next.State, models.StateEnd)
	}
}

func TestTransitionStopEndsConversation(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	ctx.State = models.StateAskWeight
	next := s.Transition(ctx, intentOf(models.IntentStop), "stop")
	if next.State != models.StateEnd {
		t.Errorf("state = %s, want %s", next.State, models.StateEnd)
	}
}

func TestTransitionBookingConfirmation(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	ctx.State = models.StateConfirmBooking

	next := s.Transition(ctx, intentOf(models.IntentYes), "yes")
	if next.State != models.StateBookAppointment {
		t.Errorf("yes: state = %s, want %s", next.State, models.StateBookAppointment)
	}

	next = s.Transition(ctx, intentOf(models.IntentNo), "no")
	if next.State != models.StateEnd {
		t.Errorf("no: state = %s, want %s", next.State, models.StateEnd)
	}
}

// Transition must never mutate the previous context's symptom slice.
func TestTransitionDoesNotAliasSymptoms(t *testing.T) {
	s := NewConversationService(newTestDictionary(t))

	ctx := models.NewConversationContext()
	ctx.State = models.StateAskSymptoms
	ctx.Collected.Symptoms = []string{"fever"}

	next := s.Transition(ctx, intentOf(models.IntentOther), "cough")
	if !reflect.DeepEqual(ctx.Collected.Symptoms, []string{"fever"}) {
		t.Errorf("previous context mutated: %v", ctx.Collected.Symptoms)
	}
	if !reflect.DeepEqual(next.Collected.Symptoms, []string{"fever", "cough"}) {
		t.Errorf("next symptoms = %v", next.Collected.Symptoms)
	}
}
