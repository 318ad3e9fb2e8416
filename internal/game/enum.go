package game

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var AllStatuses = []Status{
	StatusPending,
	StatusCompleted,
	StatusFailed,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal states never change again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
