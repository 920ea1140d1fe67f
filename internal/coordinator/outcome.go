package coordinator

// Outcome is the immutable result a worker hands back to the presentation
// goroutine. It is a success when Err is nil.
type Outcome struct {
	Value any
	Err   error
}

// Success wraps a payload.
func Success(value any) Outcome {
	return Outcome{Value: value}
}

// Failure wraps an error.
func Failure(err error) Outcome {
	return Outcome{Err: err}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Err == nil
}
