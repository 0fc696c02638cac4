package common

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "devicerelay.xyz/device-relay-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestNormalizeDeviceID(t *testing.T) {
	cases := map[string]string{
		"  Device-01 ": "device-01",
		"X1":           "x1",
		"x1":           "x1",
	}
	for input, want := range cases {
		if got := NormalizeDeviceID(input); got != want {
			t.Errorf("NormalizeDeviceID(%q) = %q, want %q", input, got, want)
		}
	}
}
