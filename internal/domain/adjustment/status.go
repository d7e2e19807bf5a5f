package adjustment

// ProcessingStatus tracks a return or damage record through its lifecycle.
// Only pending records expose a process action; processed and cancelled are
// terminal.
type ProcessingStatus string

const (
	StatusPending   ProcessingStatus = "PENDING"
	StatusProcessed ProcessingStatus = "PROCESSED"
	StatusCancelled ProcessingStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ProcessingStatus
func (s ProcessingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ProcessingStatus
func (s ProcessingStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ProcessingStatus) CanTransitionTo(target ProcessingStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessed || target == StatusCancelled
	case StatusProcessed, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// CanProcess returns true if the record may still be processed
func (s ProcessingStatus) CanProcess() bool {
	return s == StatusPending
}
