package agent

// Result is the discriminated success/failure envelope shared by every
// cross-component call: either a typed value or one taxonomy error.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Err     *Error `json:"error,omitempty"`
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Success: true, Data: value}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Success: false, Err: AsError(err)}
}

// Unwrap converts the envelope back to the (value, error) calling convention.
func (r Result[T]) Unwrap() (T, error) {
	if r.Err != nil {
		var zero T
		return zero, r.Err
	}
	return r.Data, nil
}
