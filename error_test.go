package hatemp_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jroedel/hatemp"
)

func TestErrKindsAreDistinguishable(t *testing.T) {
	err := hatemp.ErrMissingField.Withf("no field %s in attributes", "temperature")
	if !errors.Is(err, hatemp.ErrMissingField) {
		t.Error("expected the wrapped error to match its own kind")
	}
	if errors.Is(err, hatemp.ErrMissingAttributes) {
		t.Error("expected the wrapped error not to match a different kind")
	}
	if !strings.Contains(err.Error(), "temperature") {
		t.Errorf("expected the message to carry the field name, got %q", err.Error())
	}
}

func TestErrKindSurvivesExtraWrapping(t *testing.T) {
	inner := hatemp.ErrTransport.With("connection refused")
	err := fmt.Errorf("failed to get state for %s: %w", "sensor.outdoor", inner)
	if !errors.Is(err, hatemp.ErrTransport) {
		t.Error("expected the kind to survive another layer of wrapping")
	}
	if !strings.Contains(err.Error(), "sensor.outdoor") {
		t.Errorf("expected the outer context in the message, got %q", err.Error())
	}
}
