package errors

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("something went wrong"), "Error: something went wrong"},
		{"wrapped error", errors.New("failed to connect: refused"), "Error: failed to connect: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("rhythm %q not found", "guitar")
	want := `Error: rhythm "guitar" not found`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}
