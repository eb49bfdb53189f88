package terminal

import (
	"runtime"
	"testing"
)

func TestColorDisabledEnvOverride(t *testing.T) {
	t.Setenv("LOGSENTINEL_NO_COLOR", "")
	t.Setenv("NO_COLOR", "")
	if runtime.GOOS != "windows" && ColorDisabled() {
		t.Fatal("colors should be enabled without overrides")
	}

	t.Setenv("NO_COLOR", "1")
	if !ColorDisabled() {
		t.Fatal("NO_COLOR should disable colors")
	}

	t.Setenv("NO_COLOR", "")
	t.Setenv("LOGSENTINEL_NO_COLOR", "1")
	if !ColorDisabled() {
		t.Fatal("LOGSENTINEL_NO_COLOR should disable colors")
	}
}
