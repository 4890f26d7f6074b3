package domain

import "testing"

func TestMissingParamErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		params []string
		want   string
	}{
		{"two params", []string{"eventName", "id"}, "params eventName, id missing"},
		{"one param", []string{"username"}, "params username missing"},
		{"empty entries filtered", []string{"", "id"}, "params id missing"},
		{"no params", nil, "params missing"},
		{"only empty entries", []string{"", ""}, "params missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &MissingParamError{Params: tt.params}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResourceExistsErrorMessage(t *testing.T) {
	err := &ResourceExistsError{Resource: "event name", Value: "e1"}
	if got, want := err.Error(), "event name e1 already exists"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &ResourceExistsError{Resource: "username"}
	if got, want := err.Error(), "username already exists"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
