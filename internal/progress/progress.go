// Package progress defines the progress event contract shared by the
// fingerprint and similarity stages.
package progress

// Stage names reported by the detection pipeline.
const (
	StageFingerprint = "fingerprint"
	StageCompare     = "compare"
)

// Event reports that Current of Total units of Stage are done.
type Event struct {
	Stage   string
	Current int
	Total   int
}

// Percent returns completion in [0,100], or -1 when Total is unknown.
func (e Event) Percent() float64 {
	if e.Total <= 0 {
		return -1
	}
	p := float64(e.Current) / float64(e.Total) * 100
	return min(max(p, 0), 100)
}

// Func receives progress events. A nil Func ignores them.
type Func func(Event)

// Report delivers an event when f is non-nil.
func (f Func) Report(stage string, current, total int) {
	if f == nil {
		return
	}
	f(Event{Stage: stage, Current: current, Total: total})
}
