package controller

import "sync"

// Region names one output area of a Display.
type Region string

const (
	RegionStatus     Region = "status"
	RegionTranscript Region = "transcript"
	RegionSummary    Region = "summary"
)

// Snapshot is the text currently held by each region.
type Snapshot struct {
	Status     string
	Transcript string
	Summary    string
}

// Regions is an in-memory Display that can notify a listener on every write.
type Regions struct {
	mu       sync.Mutex
	snap     Snapshot
	onChange func(region Region, text string)
}

func NewRegions() *Regions {
	return &Regions{}
}

func (r *Regions) SetStatus(text string)     { r.set(RegionStatus, text) }
func (r *Regions) SetTranscript(text string) { r.set(RegionTranscript, text) }
func (r *Regions) SetSummary(text string)    { r.set(RegionSummary, text) }

// OnChange registers fn to be called after every write, outside the lock.
// Passing nil removes the listener.
func (r *Regions) OnChange(fn func(region Region, text string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

func (r *Regions) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

func (r *Regions) set(region Region, text string) {
	r.mu.Lock()
	switch region {
	case RegionStatus:
		r.snap.Status = text
	case RegionTranscript:
		r.snap.Transcript = text
	case RegionSummary:
		r.snap.Summary = text
	}
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(region, text)
	}
}
