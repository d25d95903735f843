package ingestion

import "sync"

// Status is the ingestion health signal exposed to operators.
type Status string

const (
	StatusUp         Status = "UP"
	StatusRestricted Status = "RESTRICTED"
)

// Probe is the sticky tri-state health flag for the ingestion pipeline. A
// failed email restricts the signal, and it stays restricted until a later
// run completes without errors. Reads race with a run in progress, so all
// access goes through the mutex.
type Probe struct {
	mu         sync.Mutex
	restricted bool
	hasErrors  bool
}

func NewProbe() *Probe {
	return &Probe{}
}

// SetUnhealthy marks the current run failed and restricts the health signal.
func (p *Probe) SetUnhealthy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.restricted = true
	p.hasErrors = true
}

// ResetForNewRun clears the per-run error flag. The restricted flag is left
// in place until the run finishes cleanly.
func (p *Probe) ResetForNewRun() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hasErrors = false
}

// SetHealthy clears both flags. Called only when a run ends with no errors.
func (p *Probe) SetHealthy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.restricted = false
	p.hasErrors = false
}

func (p *Probe) HasErrors() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasErrors
}

func (p *Probe) Observe() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.restricted {
		return StatusRestricted
	}
	return StatusUp
}
