package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/audit"
	"github.com/exactfit/customer-web/internal/httpresp"
	"github.com/exactfit/customer-web/internal/middleware"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type NotificationsHandler struct {
	sink   audit.Sink
	logger *slog.Logger
}

func NewNotificationsHandler(sink audit.Sink, logger *slog.Logger) *NotificationsHandler {
	return &NotificationsHandler{sink: sink, logger: logger}
}

type NotificationDTO struct {
	ID        uint   `json:"id"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityRef string `json:"entity_ref,omitempty"`
	Text      string `json:"text"`
	CreatedOn string `json:"created_on"`
}

var notificationText = map[string]string{
	audit.ActionOTPRequested:       "A sign-in code was sent to your phone.",
	audit.ActionSignedIn:           "You signed in.",
	audit.ActionEnquirySubmitted:   "Your enquiry was submitted.",
	audit.ActionEmergencySubmitted: "Your emergency request was submitted.",
	audit.ActionTicketRaised:       "Your support ticket was raised.",
	audit.ActionAddressSaved:       "An address was saved.",
	audit.ActionAddressDeleted:     "An address was removed.",
	audit.ActionContactSubmitted:   "Your message was sent to our team.",
	audit.ActionPlanSelected:       "You picked a maintenance package.",
}

func toNotification(l models.ActivityLog) NotificationDTO {
	text, ok := notificationText[l.Action]
	if !ok {
		text = l.Action
	}
	return NotificationDTO{
		ID:        l.ID,
		Action:    l.Action,
		Entity:    l.Entity,
		EntityRef: l.EntityRef,
		Text:      text,
		CreatedOn: timezone.FormatDate(l.CreatedAt),
	}
}

// List returns the signed-in phone's activity, newest first.
func (h *NotificationsHandler) List(c *gin.Context) {
	page, limit := pageParams(c, 20, 100)

	logs, total, err := h.sink.List(c.Request.Context(), middleware.UserPhone(c), page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]NotificationDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, toNotification(l))
	}

	httpresp.Page(c, out, total, page, limit)
}
