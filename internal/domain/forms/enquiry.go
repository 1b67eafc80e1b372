package forms

import (
	"strings"

	"github.com/exactfit/customer-web/internal/models"
)

const (
	PlaceholderAddress = "Select Address"
	PlaceholderService = "Select Service"
)

// EnquiryForm is the controlled form behind both the enquiry page and the
// package request wizard.
type EnquiryForm struct {
	FullName        string   `json:"fullname"`
	Email           string   `json:"email"`
	CountryCode     string   `json:"country_code"`
	Mobile          string   `json:"mobile"`
	AddressID       string   `json:"address_id"`
	ScopeOfWork     string   `json:"scope_of_work"`
	SpecificWork    string   `json:"specific_work"`
	ExistingDrawing bool     `json:"existing_drawing"`
	PlanImages      []string `json:"plan_images"`
	BudgetFrom      float64  `json:"budget_from"`
	BudgetTo        float64  `json:"budget_to"`
	Description     string   `json:"description"`
	PlanSlug        string   `json:"plan_slug,omitempty"`

	AddressPanel Panel `json:"address_panel"`
}

// EnquiryPatch carries the fields a wizard step changed; nil means untouched.
type EnquiryPatch struct {
	FullName        *string   `json:"fullname"`
	Email           *string   `json:"email"`
	CountryCode     *string   `json:"country_code"`
	Mobile          *string   `json:"mobile"`
	ScopeOfWork     *string   `json:"scope_of_work"`
	SpecificWork    *string   `json:"specific_work"`
	ExistingDrawing *bool     `json:"existing_drawing"`
	PlanImages      *[]string `json:"plan_images"`
	BudgetFrom      *float64  `json:"budget_from"`
	BudgetTo        *float64  `json:"budget_to"`
	Description     *string   `json:"description"`
}

func (f *EnquiryForm) Apply(p EnquiryPatch) {
	setString(&f.FullName, p.FullName)
	setString(&f.Email, p.Email)
	setString(&f.CountryCode, p.CountryCode)
	setString(&f.Mobile, p.Mobile)
	setString(&f.ScopeOfWork, p.ScopeOfWork)
	setString(&f.SpecificWork, p.SpecificWork)
	setString(&f.Description, p.Description)
	if p.ExistingDrawing != nil {
		f.ExistingDrawing = *p.ExistingDrawing
	}
	if p.PlanImages != nil {
		f.PlanImages = append([]string(nil), (*p.PlanImages)...)
	}
	if p.BudgetFrom != nil {
		f.BudgetFrom = *p.BudgetFrom
	}
	if p.BudgetTo != nil {
		f.BudgetTo = *p.BudgetTo
	}
}

// SelectAddress copies the chosen address into the form and closes the panel.
func (f *EnquiryForm) SelectAddress(a models.Address) {
	f.AddressID = a.ID
	f.AddressPanel.Choose(a.ID, a.Label)
}

// UsePlan pre-fills the scope of work from a package plan.
func (f *EnquiryForm) UsePlan(p models.PackagePlan) {
	f.PlanSlug = p.Slug
	f.ScopeOfWork = "Package: " + p.Name
}

func (f EnquiryForm) Missing() []string {
	var r required
	r.check("fullname", f.FullName)
	r.check("email", f.Email)
	r.check("mobile", f.Mobile)
	r.check("address_id", f.AddressID)
	r.check("scope_of_work", f.ScopeOfWork)
	if f.BudgetFrom <= 0 {
		r = append(r, "budget_from")
	}
	if f.BudgetTo <= 0 {
		r = append(r, "budget_to")
	}
	return r
}

// Ready gates the submit button.
func (f EnquiryForm) Ready() bool {
	return len(f.Missing()) == 0
}

// Payload reshapes the form into what upsert-enquiry expects.
func (f EnquiryForm) Payload() models.Enquiry {
	return models.Enquiry{
		FullName:        strings.TrimSpace(f.FullName),
		Email:           strings.ToLower(strings.TrimSpace(f.Email)),
		Mobile:          FormatMobile(f.CountryCode, f.Mobile),
		AddressID:       f.AddressID,
		ScopeOfWork:     strings.TrimSpace(f.ScopeOfWork),
		SpecificWork:    strings.TrimSpace(f.SpecificWork),
		ExistingDrawing: f.ExistingDrawing,
		PlanImages:      f.PlanImages,
		BudgetFrom:      f.BudgetFrom,
		BudgetTo:        f.BudgetTo,
		Description:     strings.TrimSpace(f.Description),
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
