package health

import "time"

// Result is the outcome of one probe invocation.
//
// Message and DurationMS are pointers so that "absent" stays distinguishable
// from an empty message or a zero duration.
type Result struct {
	// Name identifies the probe that produced the result.
	Name string `json:"name"`

	// Status is the health status.
	Status Status `json:"status"`

	// Message is optional diagnostic text, typically set when Status is not
	// healthy. Nil means no message.
	Message *string `json:"message,omitempty"`

	// DurationMS is the elapsed wall time of the invocation in milliseconds.
	// Probes leave it nil; the runner fills it in.
	DurationMS *float64 `json:"duration_ms,omitempty"`

	// Details contains arbitrary metadata about the check.
	Details map[string]any `json:"details,omitempty"`

	// Error is the failure behind an unhealthy result, if any.
	Error error `json:"-"`
}

// NewResult creates a result with no message and no duration.
func NewResult(name string, status Status) Result {
	return Result{Name: name, Status: status}
}

// Healthy creates a healthy result.
func Healthy(name string) Result {
	return NewResult(name, StatusHealthy)
}

// Degraded creates a degraded result with a diagnostic message.
func Degraded(name, message string) Result {
	return NewResult(name, StatusDegraded).WithMessage(message)
}

// Unhealthy creates an unhealthy result with a diagnostic message and the
// error that caused it. err may be nil.
func Unhealthy(name, message string, err error) Result {
	r := NewResult(name, StatusUnhealthy).WithMessage(message)
	r.Error = err
	return r
}

// WithMessage sets the message on a result.
func (r Result) WithMessage(message string) Result {
	r.Message = &message
	return r
}

// WithDetails adds details to a result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// WithDuration sets the duration on a result, stored in milliseconds.
func (r Result) WithDuration(d time.Duration) Result {
	if d < 0 {
		d = 0
	}
	ms := float64(d) / float64(time.Millisecond)
	r.DurationMS = &ms
	return r
}

// MessageText returns the message and whether one is set.
func (r Result) MessageText() (string, bool) {
	if r.Message == nil {
		return "", false
	}
	return *r.Message, true
}

// Elapsed returns the recorded duration and whether one is set.
func (r Result) Elapsed() (time.Duration, bool) {
	if r.DurationMS == nil {
		return 0, false
	}
	return time.Duration(*r.DurationMS * float64(time.Millisecond)), true
}
