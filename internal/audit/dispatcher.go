package audit

import (
	"context"
	"log/slog"
	"time"
)

const (
	ActionOTPRequested       = "otp_requested"
	ActionSignedIn           = "signed_in"
	ActionEnquirySubmitted   = "enquiry_submitted"
	ActionEmergencySubmitted = "emergency_submitted"
	ActionTicketRaised       = "ticket_raised"
	ActionAddressSaved       = "address_saved"
	ActionAddressDeleted     = "address_deleted"
	ActionContactSubmitted   = "contact_submitted"
	ActionPlanSelected       = "plan_selected"
)

type Event struct {
	SessionID string
	Phone     string
	Action    string
	Entity    string
	EntityRef string
	Metadata  any
}

type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.logger.Error("audit write failed", "error", err, "action", ev.Action)
		}
		cancel()
	}
}

// Dispatch never blocks the request: with a full queue the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue and waits for the worker to finish.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
