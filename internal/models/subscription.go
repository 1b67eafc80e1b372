package models

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "Active"
	SubscriptionPending   SubscriptionStatus = "Pending"
	SubscriptionCompleted SubscriptionStatus = "Completed"
)

var SubscriptionStatusOptions = []string{"All", string(SubscriptionActive), string(SubscriptionPending), string(SubscriptionCompleted)}

type ScheduleEntry struct {
	Date    string `json:"date"`
	Service string `json:"service"`
	Status  string `json:"status"`
}

type Subscription struct {
	ID        string          `json:"id"`
	PlanName  string          `json:"plan_name"`
	PlanPrice float64         `json:"plan_price"`
	Status    string          `json:"status"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Included  []string        `json:"included_items"`
	Schedule  []ScheduleEntry `json:"schedule"`
}
