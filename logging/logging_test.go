package logging

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		style   Style
		level   string
		wantErr bool
	}{
		{"terminal default", StyleTerminal, "", false},
		{"json debug", StyleJSON, "debug", false},
		{"noop", StyleNoop, "", false},
		{"empty style defaults", "", "warn", false},
		{"invalid style", Style("syslog"), "", true},
		{"invalid level", StyleTerminal, "loudest", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.style, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}
