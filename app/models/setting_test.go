package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppSettingsEmergencyModeToggle(t *testing.T) {
	settings := &AppSettings{}

	assert.False(t, settings.IsEmergencyModeEnabled())
	settings.SetEmergencyMode(true)
	assert.True(t, settings.IsEmergencyModeEnabled())
	settings.SetEmergencyMode(false)
	assert.False(t, settings.IsEmergencyModeEnabled())
}

func TestAppSettingsSweepIntervalDefault(t *testing.T) {
	settings := &AppSettings{}
	assert.Equal(t, 6, settings.GetSweepIntervalHours())

	settings.SweepIntervalHours = 12
	assert.Equal(t, 12, settings.GetSweepIntervalHours())
}
