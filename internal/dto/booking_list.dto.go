package dto

import (
	"sort"
	"time"

	"github.com/exactfit/customer-web/internal/domain/listing"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/timezone"
)

const (
	BookingKindEnquiry   = "enquiry"
	BookingKindEmergency = "emergency"
)

// BookingListDTO.ID is "<kind>:<ref>" so enquiries and emergencies never
// share a row id. Ref is the backend id.
type BookingListDTO struct {
	ID          string    `json:"id"`
	Ref         string    `json:"ref"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AddressID   string    `json:"address_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedOn   string    `json:"created_on"`
	Expanded    bool      `json:"expanded"`
}

func BookingID(kind, ref string) string {
	return kind + ":" + ref
}

// MergeBookings folds enquiries and emergencies into the single list the
// dashboard shows, newest first.
func MergeBookings(enquiries []models.Enquiry, emergencies []models.EmergencyRequest) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(enquiries)+len(emergencies))

	for _, e := range enquiries {
		out = append(out, BookingListDTO{
			ID:          BookingID(BookingKindEnquiry, e.ID),
			Ref:         e.ID,
			Kind:        BookingKindEnquiry,
			Title:       e.ScopeOfWork,
			Description: e.Description,
			AddressID:   e.AddressID,
			Status:      statusOrPending(e.Status),
			CreatedAt:   e.CreatedAt,
			CreatedOn:   timezone.FormatDate(e.CreatedAt),
		})
	}

	for _, e := range emergencies {
		title := e.ServiceTitle
		if title == "" {
			title = "Emergency request"
		}
		out = append(out, BookingListDTO{
			ID:          BookingID(BookingKindEmergency, e.ID),
			Ref:         e.ID,
			Kind:        BookingKindEmergency,
			Title:       title,
			Description: e.Description,
			AddressID:   e.AddressID,
			Status:      statusOrPending(e.Status),
			CreatedAt:   e.CreatedAt,
			CreatedOn:   timezone.FormatDate(e.CreatedAt),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func statusOrPending(s string) string {
	s = listing.NormalizeStatus(s)
	if s == "" {
		return "Pending"
	}
	return s
}
