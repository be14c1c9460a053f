package statuspage

import "net/http"

// Error wraps another error to include the appropriate HTTP status code to send
// as a result of this error.
type Error struct {
	Inner      error
	StatusCode int
	Message    string
}

func (err Error) Error() string {
	if err.Inner == nil {
		return http.StatusText(err.StatusCode)
	}

	return err.Inner.Error()
}

// Unwrap returns the inner error.
func (err Error) Unwrap() error {
	return err.Inner
}
