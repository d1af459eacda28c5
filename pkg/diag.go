package dupscan

import "sync"

// Diagnostic records one non-fatal skip event encountered during a scan
type Diagnostic struct {
	Path string `json:"path"`
	Op   string `json:"op"`
	Err  string `json:"error"`
}

// Diagnostics collects skip events from the walker and the digest workers.
// Per-entry failures are recorded here and the scan continues; they are never
// propagated upward past the component that encountered them.
type Diagnostics struct {
	mutex sync.Mutex
	items []Diagnostic
}

// NewDiagnostics creates an empty diagnostics collector
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Add records a skip event for the given path
func (d *Diagnostics) Add(path, op string, err error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	d.items = append(d.items, Diagnostic{Path: path, Op: op, Err: msg})

	if IsDebugEnabled("walk") {
		VerboseLog(3, "diagnostic: %s: %s: %s", op, path, msg)
	}
}

// Items returns a copy of the collected diagnostics
func (d *Diagnostics) Items() []Diagnostic {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	result := make([]Diagnostic, len(d.items))
	copy(result, d.items)
	return result
}

// Len returns the number of collected diagnostics
func (d *Diagnostics) Len() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.items)
}
