package monitoring

import "time"

// Monitor defines methods used for error reporting. Pipeline failures are
// reported here in addition to logs; they never propagate to the operation
// that triggered metric collection.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Recover()
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}

var current Monitor = NopMonitor{}

// Init sets the global monitor implementation.
func Init(m Monitor) {
	if m != nil {
		current = m
	}
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if current != nil {
		current.CaptureException(err, tags)
	}
}

// ReportFailure tags the error with the pipeline component it came from.
// Used for producer, provider and sink isolation paths.
func ReportFailure(component string, err error) {
	if err == nil {
		return
	}
	CaptureException(err, map[string]string{"component": component})
}

// Recover captures panics in goroutines.
func Recover() {
	if current != nil {
		current.Recover()
	}
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	if current != nil {
		current.Flush(d)
	}
}
