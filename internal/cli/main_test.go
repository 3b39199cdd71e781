package cli

import (
	"os"
	"testing"

	"github.com/agbru/limbcalc/internal/ui"
)

// TestMain disables colors so that output assertions are stable.
func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	os.Exit(m.Run())
}
