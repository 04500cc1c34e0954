// Package state holds the observable values a front end renders: the
// four-variant UI wrapper and conflating, subscribable slots.
package state

// Status is the active variant of a UI value.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// UI is the state of one asynchronous fetch. Exactly one variant is active:
// Data is meaningful only for StatusSuccess and Message only for StatusError.
// The zero value is Idle.
type UI[T any] struct {
	Status  Status
	Data    T
	Message string
}

func Idle[T any]() UI[T] {
	return UI[T]{Status: StatusIdle}
}

func Loading[T any]() UI[T] {
	return UI[T]{Status: StatusLoading}
}

func Success[T any](data T) UI[T] {
	return UI[T]{Status: StatusSuccess, Data: data}
}

func Failure[T any](message string) UI[T] {
	return UI[T]{Status: StatusError, Message: message}
}

// IsIdle reports whether u is Idle. The empty Status counts as Idle.
func (u UI[T]) IsIdle() bool {
	return u.Status == StatusIdle || u.Status == ""
}

func (u UI[T]) IsLoading() bool { return u.Status == StatusLoading }
func (u UI[T]) IsSuccess() bool { return u.Status == StatusSuccess }
func (u UI[T]) IsError() bool   { return u.Status == StatusError }

// Get returns Data and true when u is Success.
func (u UI[T]) Get() (T, bool) {
	if u.Status != StatusSuccess {
		var zero T
		return zero, false
	}
	return u.Data, true
}

// Match calls exactly one of the handlers according to the active variant.
// Every handler must be supplied, so adding a variant breaks every caller.
func Match[T, R any](u UI[T], idle func() R, loading func() R, success func(T) R, failure func(string) R) R {
	switch u.Status {
	case StatusLoading:
		return loading()
	case StatusSuccess:
		return success(u.Data)
	case StatusError:
		return failure(u.Message)
	default:
		return idle()
	}
}
