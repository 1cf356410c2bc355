package seat

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked:
		return true
	default:
		return false
	}
}

// ClaimResult is the outcome of an atomic claim attempt against one seat.
type ClaimResult int

const (
	ClaimOK ClaimResult = iota
	ClaimConflict
	ClaimNotFound
)

func (r ClaimResult) String() string {
	switch r {
	case ClaimOK:
		return "claimed"
	case ClaimConflict:
		return "conflict"
	case ClaimNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
