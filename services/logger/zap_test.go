package logsvc

import (
	"testing"

	"github.com/rollbar/rollbar-go"

	"github.com/trezcool/studyplanner/core"
)

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		level   string
		wantErr bool
	}{
		{name: "development", debug: true},
		{name: "production", debug: false},
		{name: "level override", debug: true, level: "warn"},
		{name: "unknown level", level: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewZapLogger(tt.debug, tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewZapLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				l.With("test", tt.name).Debug("built")
			}
		})
	}
}

func TestNew(t *testing.T) {
	l, sync, err := New(&core.Config{Debug: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sync()
	if _, ok := l.(*ZapLogger); !ok {
		t.Errorf("New() without rollbar token = %T, want *ZapLogger", l)
	}

	defer rollbar.SetEnabled(false)
	l, sync, err = New(&core.Config{Debug: true, RollbarToken: "token", Env: "TEST"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sync()
	if _, ok := l.(*RollbarLogger); !ok {
		t.Errorf("New() with rollbar token = %T, want *RollbarLogger", l)
	}
}
