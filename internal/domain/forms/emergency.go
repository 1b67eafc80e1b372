package forms

import (
	"strings"

	"github.com/exactfit/customer-web/internal/models"
)

type EmergencyForm struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	CountryCode     string `json:"country_code"`
	Mobile          string `json:"mobile"`
	ServiceID       string `json:"service_id"`
	ServiceTitle    string `json:"service_title"`
	SubServiceID    string `json:"sub_service_id"`
	SubServiceTitle string `json:"sub_service_title"`
	AddressID       string `json:"address_id"`
	Description     string `json:"description"`

	AddressPanel Panel `json:"address_panel"`
	ServicePanel Panel `json:"service_panel"`
}

type EmergencyPatch struct {
	FullName    *string `json:"fullname"`
	Email       *string `json:"email"`
	CountryCode *string `json:"country_code"`
	Mobile      *string `json:"mobile"`
	Description *string `json:"description"`
}

func (f *EmergencyForm) Apply(p EmergencyPatch) {
	setString(&f.FullName, p.FullName)
	setString(&f.Email, p.Email)
	setString(&f.CountryCode, p.CountryCode)
	setString(&f.Mobile, p.Mobile)
	setString(&f.Description, p.Description)
}

func (f *EmergencyForm) SelectAddress(a models.Address) {
	f.AddressID = a.ID
	f.AddressPanel.Choose(a.ID, a.Label)
}

// SelectService copies the service (and optionally one of its sub-services)
// into the form and closes the service panel.
func (f *EmergencyForm) SelectService(s models.Service, sub *models.SubService) {
	f.ServiceID = s.ID
	f.ServiceTitle = s.Title
	f.SubServiceID = ""
	f.SubServiceTitle = ""

	label := s.Title
	if sub != nil {
		f.SubServiceID = sub.ID
		f.SubServiceTitle = sub.Title
		label = s.Title + " / " + sub.Title
	}
	f.ServicePanel.Choose(s.ID, label)
}

func (f EmergencyForm) Missing() []string {
	var r required
	r.check("fullname", f.FullName)
	r.check("email", f.Email)
	r.check("mobile", f.Mobile)
	r.check("service_id", f.ServiceID)
	r.check("address_id", f.AddressID)
	r.check("description", f.Description)
	return r
}

func (f EmergencyForm) Ready() bool {
	return len(f.Missing()) == 0
}

func (f EmergencyForm) Payload() models.EmergencyRequest {
	return models.EmergencyRequest{
		FullName:     strings.TrimSpace(f.FullName),
		Email:        strings.ToLower(strings.TrimSpace(f.Email)),
		Mobile:       FormatMobile(f.CountryCode, f.Mobile),
		ServiceID:    f.ServiceID,
		SubServiceID: f.SubServiceID,
		AddressID:    f.AddressID,
		Description:  strings.TrimSpace(f.Description),
	}
}
