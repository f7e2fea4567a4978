package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cisglee/uppraisal/cmd/uppraise/config"
	"github.com/cisglee/uppraisal/internal/logging"
)

func TestSetupLoggingLogFile(t *testing.T) {
	t.Setenv("DEBUG", "")
	orig := config.Global
	t.Cleanup(func() {
		config.Global = orig
		logging.RestoreOutput()
		logging.SetLevel("ERROR")
	})

	config.Global.LogFile = filepath.Join(t.TempDir(), "uppraise.log")
	config.Global.LogLevel = "warn"

	SetupLogging()
	logging.Info("filtered out")
	logging.Warn("batch ended in state %q", "failed")

	data, err := os.ReadFile(config.Global.LogFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `batch ended in state "failed"`) {
		t.Errorf("log file missing warning: %q", out)
	}
	if strings.Contains(out, "filtered out") {
		t.Errorf("log file contains INFO line at WARN level: %q", out)
	}
}

func TestRestyLogger(t *testing.T) {
	// RestyLogger must satisfy the logger interface resty expects
	var l interface {
		Errorf(string, ...any)
		Warnf(string, ...any)
		Debugf(string, ...any)
	} = RestyLogger{}
	l.Debugf("request %d", 1)
}
