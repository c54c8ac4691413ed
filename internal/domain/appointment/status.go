package appointment

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusRejected    Status = "rejected"
	StatusRescheduled Status = "rescheduled"
	StatusCancelled   Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusRescheduled},
	StatusConfirmed: {StatusRescheduled, StatusCancelled},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusRescheduled, StatusCancelled:
		return true
	default:
		return false
	}
}

// Occupies reports whether an appointment in this status blocks its interval.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OccupyingStatuses is the set counted by overlap checks, in storage order.
func OccupyingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}
