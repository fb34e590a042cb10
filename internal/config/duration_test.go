// internal/config/duration_test.go
package config

import (
	"testing"
	"time"
)

func TestParseDurationFlexible(t *testing.T) {
	def := 30 * time.Second

	tests := []struct {
		name    string
		raw     interface{}
		want    time.Duration
		wantErr bool
	}{
		{"duration string", "90s", 90 * time.Second, false},
		{"minutes string", "2m", 2 * time.Minute, false},
		{"plain seconds string", "120", 120 * time.Second, false},
		{"int seconds", 45, 45 * time.Second, false},
		{"int64 seconds", int64(10), 10 * time.Second, false},
		{"time.Duration passthrough", 5 * time.Second, 5 * time.Second, false},
		{"empty string uses default", "", def, false},
		{"nil uses default", nil, def, false},
		{"garbage string", "soon", def, true},
		{"negative seconds", -5, def, true},
		{"zero duration", time.Duration(0), def, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDurationFlexible(tt.raw, def)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("duration = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppConfigValues_Accessors(t *testing.T) {
	vals := AppConfigValues{
		"host":    "smtp.example.com",
		"port":    int64(587), // viper returns int64 for file-sourced ints
		"retries": 3,
		"ssl":     true,
		"timeout": "45s",
	}

	if got := vals.String("host"); got != "smtp.example.com" {
		t.Errorf("String(host) = %q", got)
	}
	if got := vals.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
	if got := vals.Int("port"); got != 587 {
		t.Errorf("Int(port) = %d, want 587", got)
	}
	if got := vals.Int("retries"); got != 3 {
		t.Errorf("Int(retries) = %d, want 3", got)
	}
	if got := vals.Bool("ssl"); !got {
		t.Error("Bool(ssl) = false, want true")
	}
	if got := vals.Duration("timeout", time.Second); got != 45*time.Second {
		t.Errorf("Duration(timeout) = %v, want 45s", got)
	}
	if got := vals.Duration("missing", time.Second); got != time.Second {
		t.Errorf("Duration(missing) = %v, want default", got)
	}
}
