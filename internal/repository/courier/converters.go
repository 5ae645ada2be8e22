package courier

import (
	"time"

	"github.com/AlekSi/pointer"

	"easygo/internal/entities"
)

func ToDomain(c *CourierDB) *entities.CourierProfile {
	if c == nil {
		return nil
	}

	return &entities.CourierProfile{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Transport:  entities.TransportType(c.Transport),
		Status:     entities.CourierStatusType(c.Status),
		AppliedAt:  pointer.GetTime(c.AppliedAt),
		ApprovedAt: pointer.GetTime(c.ApprovedAt),
		RejectedAt: pointer.GetTime(c.RejectedAt),
	}
}

func FromDomain(profile *entities.CourierProfile) *CourierDB {
	if profile == nil {
		return nil
	}

	return &CourierDB{
		ID:         profile.ID,
		Name:       profile.Name,
		Phone:      profile.Phone,
		Transport:  profile.Transport.String(),
		Status:     profile.Status.String(),
		AppliedAt:  toNullableTime(profile.AppliedAt),
		ApprovedAt: toNullableTime(profile.ApprovedAt),
		RejectedAt: toNullableTime(profile.RejectedAt),
	}
}

func ToDomainList(couriersDB []CourierDB) []entities.CourierProfile {
	if len(couriersDB) == 0 {
		return []entities.CourierProfile{}
	}

	result := make([]entities.CourierProfile, len(couriersDB))
	for i, courierDB := range couriersDB {
		result[i] = *ToDomain(&courierDB)
	}
	return result
}

func toNullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return pointer.ToTime(t)
}
