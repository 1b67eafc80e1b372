package models

import "time"

// Enquiry is the backend payload of upsert-enquiry and the row shape of
// get-all-enquiry.
type Enquiry struct {
	ID              string    `json:"id,omitempty"`
	FullName        string    `json:"fullname"`
	Email           string    `json:"email"`
	Mobile          string    `json:"mobile"`
	AddressID       string    `json:"address_id"`
	ScopeOfWork     string    `json:"scope_of_work"`
	SpecificWork    string    `json:"specific_work,omitempty"`
	ExistingDrawing bool      `json:"existing_drawing"`
	PlanImages      []string  `json:"plan_images,omitempty"`
	BudgetFrom      float64   `json:"budget_from"`
	BudgetTo        float64   `json:"budget_to"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// EmergencyRequest is the backend payload of upsert-emergency and the row
// shape of get-all-emergency.
type EmergencyRequest struct {
	ID           string    `json:"id,omitempty"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	ServiceID    string    `json:"service_id"`
	SubServiceID string    `json:"sub_service_id,omitempty"`
	AddressID    string    `json:"address_id"`
	Description  string    `json:"description"`
	ServiceTitle string    `json:"service_title,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Booking statuses offered by the dashboard filter.
var BookingStatusOptions = []string{"All", "Pending", "Confirmed", "In Progress", "Completed", "Cancelled"}
