package backend

// RejectionError is returned when the backend answers an order submission
// with success=false. Message is surfaced to the user verbatim.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}
