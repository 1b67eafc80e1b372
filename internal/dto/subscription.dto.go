package dto

import (
	"github.com/exactfit/customer-web/internal/domain/listing"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/timezone"
)

type ScheduleEntryDTO struct {
	Date    string `json:"date"`
	Service string `json:"service"`
	Status  string `json:"status"`
}

type SubscriptionDTO struct {
	ID        string             `json:"id"`
	PlanName  string             `json:"plan_name"`
	PlanPrice float64            `json:"plan_price"`
	Status    string             `json:"status"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Included  []string           `json:"included_items"`
	Schedule  []ScheduleEntryDTO `json:"schedule"`
	Expanded  bool               `json:"expanded"`
}

func ToSubscriptionDTOs(subs []models.Subscription) []SubscriptionDTO {
	out := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		schedule := make([]ScheduleEntryDTO, 0, len(s.Schedule))
		for _, e := range s.Schedule {
			schedule = append(schedule, ScheduleEntryDTO{
				Date:    e.Date,
				Service: e.Service,
				Status:  listing.NormalizeStatus(e.Status),
			})
		}

		included := s.Included
		if included == nil {
			included = []string{}
		}

		out = append(out, SubscriptionDTO{
			ID:        s.ID,
			PlanName:  s.PlanName,
			PlanPrice: s.PlanPrice,
			Status:    listing.NormalizeSubscriptionStatus(s.Status),
			StartDate: timezone.FormatDate(s.StartDate),
			EndDate:   timezone.FormatDate(s.EndDate),
			Included:  included,
			Schedule:  schedule,
		})
	}
	return out
}
