package courier

import "time"

type CourierDB struct {
	ID         int64
	Name       string
	Phone      string
	Transport  string
	Status     string
	AppliedAt  *time.Time
	ApprovedAt *time.Time
	RejectedAt *time.Time
}
