package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestEnabled(t *testing.T) {
	for value, want := range map[string]bool{"": true, "on": true, "off": false, "FALSE": false, "0": false} {
		t.Setenv("PITD_TELEMETRY", value)
		if got := Enabled(); got != want {
			t.Errorf("Enabled() with %q = %v, want %v", value, got, want)
		}
	}
}

func TestNewRunIDIsUUID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Fatal("run ids should be unique")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("run id %q is not a uuid: %v", a, err)
	}
}

func TestTracerWithoutSetup(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "unexported")
	if span.SpanContext().IsValid() {
		t.Error("tracer without a provider should not produce a valid span context")
	}
	span.End()
}
