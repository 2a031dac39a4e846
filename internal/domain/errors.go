package domain

import "fmt"

// ServiceUnavailableError reports that a remote service call failed and no
// safe default exists for the operation. The service name is one of the
// Service* constants so callers can tell which dependency was down.
type ServiceUnavailableError struct {
	Service string
	Err     error
}

// NewServiceUnavailable wraps a remote-call failure for the named service.
func NewServiceUnavailable(service string, err error) *ServiceUnavailableError {
	return &ServiceUnavailableError{Service: service, Err: err}
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s service unavailable: %v", e.Service, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Err
}
