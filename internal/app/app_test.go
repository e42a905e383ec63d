package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppConfig_ValidateRequiresSecret(t *testing.T) {
	cfg := &AppConfig{SnapThresholdPx: 10}
	err := cfg.Validate()
	assert.Error(t, err, "empty secret must fail validation")
}

func TestAppConfig_ValidateRequiresPositiveSnapThreshold(t *testing.T) {
	cfg := &AppConfig{Secret: "s", SnapThresholdPx: 0}
	err := cfg.Validate()
	assert.Error(t, err, "zero snap threshold must fail validation")
}

func TestAppConfig_ValidateAcceptsMinimalConfig(t *testing.T) {
	cfg := &AppConfig{Secret: "s", SnapThresholdPx: 10}
	assert.NoError(t, cfg.Validate())
}
