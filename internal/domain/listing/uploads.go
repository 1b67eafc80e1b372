package listing

import (
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/models"
)

const MaxPendingUploads = 5

// PendingUploads are the attachments of a ticket that has not been raised.
type PendingUploads []models.Attachment

func (p *PendingUploads) Add(a models.Attachment) error {
	if len(*p) >= MaxPendingUploads {
		return httperr.ErrBusiness("too_many_attachments")
	}
	*p = append(*p, a)
	return nil
}

// Remove drops exactly the entry at index; the rest keep their order.
func (p *PendingUploads) Remove(index int) error {
	if index < 0 || index >= len(*p) {
		return httperr.ErrBusiness("attachment_not_found")
	}
	cur := *p
	out := make(PendingUploads, 0, len(cur)-1)
	out = append(out, cur[:index]...)
	out = append(out, cur[index+1:]...)
	*p = out
	return nil
}

func (p PendingUploads) URLs() []string {
	urls := make([]string, 0, len(p))
	for _, a := range p {
		urls = append(urls, a.URL)
	}
	return urls
}
