package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/domain/listing"
	"github.com/exactfit/customer-web/internal/dto"
	"github.com/exactfit/customer-web/internal/httpresp"
	"github.com/exactfit/customer-web/internal/models"
)

type DashboardAPI interface {
	Enquiries(ctx context.Context) ([]models.Enquiry, error)
	Emergencies(ctx context.Context) ([]models.EmergencyRequest, error)
	Subscriptions(ctx context.Context) ([]models.Subscription, error)
}

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	api    DashboardAPI
	logger *slog.Logger
}

func NewDashboardHandler(api DashboardAPI, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{api: api, logger: logger}
}

// ======================================================
// BOOKINGS
// ======================================================

// Bookings merges enquiries and emergencies. ?status= filters, ?expanded=
// opens one row.
func (h *DashboardHandler) Bookings(c *gin.Context) {
	status, err := listing.ValidStatus(c.Query("status"), models.BookingStatusOptions)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	enquiries, err := h.api.Enquiries(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	emergencies, err := h.api.Emergencies(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	all := dto.MergeBookings(enquiries, emergencies)
	out := listing.FilterByStatus(all, status, func(b dto.BookingListDTO) string { return b.Status })

	acc := listing.Accordion{ID: c.Query("expanded")}
	for i := range out {
		out[i].Expanded = acc.IsExpanded(out[i].ID)
	}

	httpresp.Filtered(c, out, status, models.BookingStatusOptions, acc.ID)
}

// ======================================================
// SUBSCRIPTIONS
// ======================================================

func (h *DashboardHandler) Subscriptions(c *gin.Context) {
	status, err := listing.ValidStatus(c.Query("status"), models.SubscriptionStatusOptions)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	subs, err := h.api.Subscriptions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := listing.FilterByStatus(dto.ToSubscriptionDTOs(subs), status, func(s dto.SubscriptionDTO) string { return s.Status })

	acc := listing.Accordion{ID: c.Query("expanded")}
	for i := range out {
		out[i].Expanded = acc.IsExpanded(out[i].ID)
	}

	httpresp.Filtered(c, out, status, models.SubscriptionStatusOptions, acc.ID)
}

// expandedIDs reads ?expanded=a,b or repeated ?expanded= values.
func expandedIDs(c *gin.Context) []string {
	var ids []string
	for _, v := range c.QueryArray("expanded") {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
