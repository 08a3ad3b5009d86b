package utils

import "testing"

func TestParseAge(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"25", 25, true},
		{"25 years", 25, true},
		{" 119 ", 119, true},
		{"1", 1, true},
		{"0", 0, false},
		{"120", 0, false},
		{"25.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAge(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAge(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseHeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"175", 175, true},
		{"175.5 cm", 175.5, true},
		{"31", 31, true},
		{"30", 0, false},
		{"300", 0, false},
		{"tall", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseHeight(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseHeight(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"70", 70, true},
		{"70.5 kg", 70.5, true},
		{"3", 3, true},
		{"2", 0, false},
		{"600", 0, false},
		{"heavy", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseWeight(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseWeight(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"pune", "pune", true},
		{"  new delhi  ", "new delhi", true},
		{"x", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseLocation(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLocation(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchProfileField(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"age", "age", true},
		{"my age", "age", true},
		{"gender", "gender", true},
		{"sex", "gender", true},
		{"my height", "height", true},
		{"how tall i am", "height", true},
		{"weight", "weight", true},
		{"kg", "weight", true},
		{"location", "location", true},
		{"my city", "location", true},
		{"address", "location", true},
		{"blood group", "", false},
		{"something else", "", false},
	}

	for _, tt := range tests {
		got, ok := MatchProfileField(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MatchProfileField(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
