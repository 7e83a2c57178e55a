package diagram

import (
	"errors"
	"testing"
)

func TestSetupIsIdempotent(t *testing.T) {
	Reset()
	defer Reset()

	if err := Setup(Config{Theme: ThemeDark}); err != nil {
		t.Fatalf("first Setup: %v", err)
	}
	// Same config again is a no-op
	if err := Setup(Config{Theme: ThemeDark}); err != nil {
		t.Errorf("repeated Setup with equal config: %v", err)
	}
	if !Initialized() {
		t.Error("engine should report initialized")
	}
}

func TestSetupRejectsReconfiguration(t *testing.T) {
	Reset()
	defer Reset()

	if err := Setup(Config{Theme: ThemeDark}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	err := Setup(Config{Theme: ThemeNeutral})
	if !errors.Is(err, ErrReconfigured) {
		t.Errorf("expected ErrReconfigured, got %v", err)
	}
	// Original config survives
	if Current().Theme != ThemeDark {
		t.Errorf("Theme = %q, want dark", Current().Theme)
	}
}

func TestSetupAppliesDefaults(t *testing.T) {
	Reset()
	defer Reset()

	if err := Setup(Config{}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	got := Current()
	if got.Theme != ThemeDefault || got.SecurityLevel != "strict" || got.FontFamily != "sans-serif" {
		t.Errorf("defaults = %+v", got)
	}

	// Defaulted config equals an explicitly-defaulted one
	if err := Setup(Config{Theme: ThemeDefault, SecurityLevel: "strict", FontFamily: "sans-serif"}); err != nil {
		t.Errorf("equal-after-defaults Setup: %v", err)
	}
}

func TestCurrentBeforeSetup(t *testing.T) {
	Reset()
	defer Reset()

	if Initialized() {
		t.Fatal("should not be initialized after Reset")
	}
	if Current().Theme != ThemeDefault {
		t.Error("Current before Setup should return defaults")
	}
}
