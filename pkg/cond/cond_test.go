package cond

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		clauses int
		wantErr bool
	}{
		{"Empty", "", 0, false},
		{"Blank", "   ", 0, false},
		{"Single", "toggle_2nd_rescuer == true", 1, false},
		{"NoSpaces", "chk_speakerphone==false", 1, false},
		{"Conjunction", "toggle_2nd_rescuer == true AND chk_speakerphone == false", 2, false},
		{"LowercaseAnd", "a == true and b == true", 2, false},
		{"Triple", "a == true AND b == false AND c == true", 3, false},
		{"MissingRHS", "a ==", 0, true},
		{"NotBoolean", "a == maybe", 0, true},
		{"NotEquality", "a != true", 0, true},
		{"BadIdent", "2fast == true", 0, true},
		{"Or", "a == true OR b == true", 0, true},
		{"DanglingAnd", "a == true AND", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := Parse(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if err == nil && len(cond.Clauses) != tt.clauses {
				t.Errorf("Parse(%q) clauses = %d, want %d", tt.expr, len(cond.Clauses), tt.clauses)
			}
		})
	}
}

func TestCondition_Eval(t *testing.T) {
	state := map[string]bool{
		"toggle_2nd_rescuer": true,
		"chk_speakerphone":   false,
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"Empty", "", true},
		{"TrueMatch", "toggle_2nd_rescuer == true", true},
		{"TrueMismatch", "toggle_2nd_rescuer == false", false},
		{"FalseMatch", "chk_speakerphone == false", true},
		{"Conjunction", "toggle_2nd_rescuer == true AND chk_speakerphone == false", true},
		{"ConjunctionOneFails", "toggle_2nd_rescuer == true AND chk_speakerphone == true", false},
		{"AbsentIdentReadsFalse", "missing == false", true},
		{"AbsentIdentWantedTrue", "missing == true", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.expr, err)
			}
			if got := cond.Eval(state); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestVisible_FailsOpen(t *testing.T) {
	if !Visible("a == garbage", nil) {
		t.Errorf("malformed expression should leave the item visible")
	}
	if Visible("a == true", nil) {
		t.Errorf("well-formed unmet condition should hide the item")
	}
}
