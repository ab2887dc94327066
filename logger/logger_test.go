package logger

import "testing"

func TestSetLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error", ""} {
		if err := SetLevel(level); err != nil {
			t.Errorf("SetLevel(%q) error = %v", level, err)
		}
	}
	if err := SetLevel("verbose"); err == nil {
		t.Error("SetLevel(verbose) expected error")
	}
	SetLevel("info")
}
