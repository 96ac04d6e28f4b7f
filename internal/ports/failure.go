package ports

// FailureInjector returns the probability in [0,1] that a disk call is
// treated as failed regardless of its real outcome
type FailureInjector interface {
	Rate() float64
}

// NoFailures never injects a failure
type NoFailures struct{}

func (NoFailures) Rate() float64 { return 0 }
