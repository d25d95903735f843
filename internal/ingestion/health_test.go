package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeStartsHealthy(t *testing.T) {
	p := NewProbe()
	assert.Equal(t, StatusUp, p.Observe())
	assert.False(t, p.HasErrors())
}

func TestProbeUnhealthySticksAcrossRunReset(t *testing.T) {
	p := NewProbe()
	p.SetUnhealthy()
	assert.Equal(t, StatusRestricted, p.Observe())
	assert.True(t, p.HasErrors())

	// A new run clears the error counter but not the restricted signal.
	p.ResetForNewRun()
	assert.Equal(t, StatusRestricted, p.Observe())
	assert.False(t, p.HasErrors())
}

func TestProbeHealsOnCleanRun(t *testing.T) {
	p := NewProbe()
	p.SetUnhealthy()
	p.ResetForNewRun()
	p.SetHealthy()

	assert.Equal(t, StatusUp, p.Observe())
	assert.False(t, p.HasErrors())
}

func TestProbeFailureDuringRecoveryRun(t *testing.T) {
	p := NewProbe()
	p.SetUnhealthy()
	p.ResetForNewRun()
	p.SetUnhealthy()

	assert.Equal(t, StatusRestricted, p.Observe())
	assert.True(t, p.HasErrors())
}
