package entity

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusCanceled Status = "CANCELED"
	StatusExpired  Status = "EXPIRED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCanceled, StatusExpired:
		return true
	default:
		return false
	}
}

// CanCancel holds only for ACTIVE subscriptions.
func (s Status) CanCancel() bool {
	return s == StatusActive
}

// CanExpire holds for anything not already EXPIRED, so a CANCELED
// subscription may still be expired later.
func (s Status) CanExpire() bool {
	return s != StatusExpired
}
