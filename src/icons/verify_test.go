package icons

import (
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func TestVerifyGeneratedIcons(t *testing.T) {
	cfg := testConfig(t)

	if _, err := NewGenerator(cfg).Placeholders(); err != nil {
		t.Fatalf("Placeholders failed: %v", err)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify failed on fresh icons: %v", err)
	}
}

func TestVerifyReportsProblems(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}

	// icon16 missing, icon48 wrong size, icon128 not an image
	if err := imaging.Save(imaging.New(50, 48, color.White), cfg.IconPath(48)); err != nil {
		t.Fatalf("Failed to write icon: %v", err)
	}
	if err := os.WriteFile(cfg.IconPath(128), []byte("junk"), 0644); err != nil {
		t.Fatalf("Failed to write icon: %v", err)
	}

	err := Verify(cfg)
	if err == nil {
		t.Fatal("Expected Verify to fail")
	}

	msg := err.Error()
	for _, want := range []string{"icon16:", "icon48:", "50x48", "icon128: failed to decode"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in error, got: %s", want, msg)
		}
	}
}
