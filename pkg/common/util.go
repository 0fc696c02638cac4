package common

import (
	"os"
	"strings"
	"testing"
)

func IsTestEnv() bool {
	return testing.Testing()
}

func IsDevelopment() bool {
	return os.Getenv(EnvKeyGoEnv) == "development"
}

func IsProduction() bool {
	return os.Getenv(EnvKeyGoEnv) == "production"
}

// NormalizeDeviceID is the single identity rule for devices: registry keys,
// blob keys and relay channel names all go through it.
func NormalizeDeviceID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
