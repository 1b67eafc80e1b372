package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/audit"
	"github.com/exactfit/customer-web/internal/domain/listing"
	"github.com/exactfit/customer-web/internal/dto"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/httpresp"
	"github.com/exactfit/customer-web/internal/middleware"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/state"
	"github.com/exactfit/customer-web/internal/upload"
)

type TicketAPI interface {
	Tickets(ctx context.Context) ([]models.Ticket, error)
	TicketsByStatus(ctx context.Context, status string) ([]models.Ticket, error)
	Ticket(ctx context.Context, number string) (*models.Ticket, error)
	RaiseTicket(ctx context.Context, in models.NewTicket) (*models.Ticket, error)
}

// ======================================================
// HANDLER
// ======================================================

type TicketsHandler struct {
	api      TicketAPI
	store    state.Store
	uploader *upload.Uploader
	audit    *audit.Dispatcher
	logger   *slog.Logger
}

func NewTicketsHandler(
	api TicketAPI,
	store state.Store,
	uploader *upload.Uploader,
	audit *audit.Dispatcher,
	logger *slog.Logger,
) *TicketsHandler {
	return &TicketsHandler{
		api:      api,
		store:    store,
		uploader: uploader,
		audit:    audit,
		logger:   logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RaiseTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type PresignRequest struct {
	Name        string `json:"name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type RegisterAttachmentRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size"`
}

// ======================================================
// LIST / GET
// ======================================================

// List filters by ?status= through the backend's status endpoint and
// expands every id in ?expanded=.
func (h *TicketsHandler) List(c *gin.Context) {
	status, err := listing.ValidStatus(c.Query("status"), models.TicketStatusOptions)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	var tickets []models.Ticket
	if status == listing.StatusAll {
		tickets, err = h.api.Tickets(ctx)
	} else {
		tickets, err = h.api.TicketsByStatus(ctx, status)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := listing.FilterByStatus(dto.ToTicketDTOs(tickets), status, func(t dto.TicketDTO) string { return t.Status })

	expanded := listing.NewExpandSet(expandedIDs(c)...)
	for i := range out {
		out[i].Expanded = expanded.IsExpanded(out[i].ID) || expanded.IsExpanded(out[i].TicketNumber)
	}

	httpresp.Filtered(c, out, status, models.TicketStatusOptions, "")
}

func (h *TicketsHandler) Get(c *gin.Context) {
	t, err := h.api.Ticket(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	d := dto.ToTicketDTO(*t)
	d.Expanded = true
	c.JSON(http.StatusOK, d)
}

// ======================================================
// PENDING ATTACHMENTS
// ======================================================

func (h *TicketsHandler) loadPending(ctx context.Context, sid string) (listing.PendingUploads, error) {
	var p listing.PendingUploads
	if _, err := state.GetJSON(ctx, h.store, sid, state.KeyTicketUploads, &p); err != nil {
		return nil, err
	}
	if p == nil {
		p = listing.PendingUploads{}
	}
	return p, nil
}

func (h *TicketsHandler) savePending(c *gin.Context, p listing.PendingUploads) {
	if err := state.SetJSON(c.Request.Context(), h.store, middleware.SessionID(c), state.KeyTicketUploads, p); err != nil {
		respondError(c, h.logger, err)
		return
	}
	httpresp.List(c, p)
}

func (h *TicketsHandler) ListAttachments(c *gin.Context) {
	p, err := h.loadPending(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	httpresp.List(c, p)
}

// AddAttachment accepts a multipart "file", which is normalised and stored,
// or a JSON body describing a file the browser already put through a
// pre-signed URL.
func (h *TicketsHandler) AddAttachment(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.loadPending(ctx, middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if len(p) >= listing.MaxPendingUploads {
		respondError(c, h.logger, httperr.ErrBusiness("too_many_attachments"))
		return
	}

	var att *models.Attachment
	if strings.HasPrefix(c.ContentType(), "application/json") {
		att, err = h.registerPresigned(c)
	} else {
		att, err = h.receiveFile(c)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := p.Add(*att); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.savePending(c, p)
}

func (h *TicketsHandler) receiveFile(c *gin.Context) (*models.Attachment, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, upload.MaxSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, upload.ErrTooLarge
		}
		return nil, httperr.ErrBusinessMsg("file_required", "Choose a file to attach.")
	}
	if fh.Size > upload.MaxSize {
		return nil, upload.ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, upload.MaxSize+1))
	if err != nil {
		return nil, err
	}
	return h.uploader.Upload(c.Request.Context(), fh.Filename, body)
}

func (h *TicketsHandler) registerPresigned(c *gin.Context) (*models.Attachment, error) {
	if !h.uploader.CanPresign() {
		return nil, upload.ErrNoPresign
	}

	var req RegisterAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_request", "Invalid attachment.")
	}
	if !h.uploader.Owns(req.URL) {
		return nil, httperr.ErrBusiness("invalid_attachment_url")
	}
	if req.ContentType != "application/pdf" && req.ContentType != "image/webp" {
		return nil, upload.ErrUnsupported
	}
	if req.Size > upload.MaxSize {
		return nil, upload.ErrTooLarge
	}

	return &models.Attachment{
		Name:        req.Name,
		URL:         req.URL,
		ContentType: req.ContentType,
		Size:        req.Size,
	}, nil
}

func (h *TicketsHandler) RemoveAttachment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, h.logger, httperr.ErrBusiness("attachment_not_found"))
		return
	}

	p, err := h.loadPending(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := p.Remove(index); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.savePending(c, p)
}

// Presign hands the browser a signed PUT for uploading straight to the
// bucket.
func (h *TicketsHandler) Presign(c *gin.Context) {
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name and content type are required.")
		return
	}

	signed, err := h.uploader.Presign(c.Request.Context(), req.Name, req.ContentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

// ======================================================
// RAISE
// ======================================================

func (h *TicketsHandler) Raise(c *gin.Context) {
	var req RaiseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Title and description are required.")
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	p, err := h.loadPending(ctx, sid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ticket, err := h.api.RaiseTicket(ctx, models.NewTicket{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Attachments: p.URLs(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.store.Delete(ctx, sid, state.KeyTicketUploads); err != nil {
		h.logger.Warn("clear pending uploads", "error", err)
	}

	h.audit.Dispatch(audit.Event{
		SessionID: sid,
		Phone:     middleware.UserPhone(c),
		Action:    audit.ActionTicketRaised,
		Entity:    "ticket",
		EntityRef: ticket.TicketNumber,
		Metadata:  map[string]any{"attachments": len(p)},
	})

	c.JSON(http.StatusCreated, dto.ToTicketDTO(*ticket))
}
