package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exactfit/customer-web/internal/models"
)

func completeEnquiry() EnquiryForm {
	return EnquiryForm{
		FullName:    "Mariam Khan",
		Email:       "Mariam@Example.com ",
		CountryCode: "+971",
		Mobile:      "50 123 4567",
		AddressID:   "a1",
		ScopeOfWork: "Kitchen renovation",
		BudgetFrom:  5000,
		BudgetTo:    15000,
	}
}

func TestPanelToggleChooseDisplay(t *testing.T) {
	var p Panel
	assert.Equal(t, PlaceholderAddress, p.Display(PlaceholderAddress))

	p.Toggle()
	assert.True(t, p.Open)

	p.Choose("a2", "Work")
	assert.False(t, p.Open)
	assert.Equal(t, "a2", p.SelectedID)
	assert.Equal(t, "Work", p.Display(PlaceholderAddress))

	p.Toggle()
	p.Toggle()
	assert.False(t, p.Open)
	assert.Equal(t, "Work", p.Display(PlaceholderAddress))
}

func TestSelectAddressClosesPanelWithLabel(t *testing.T) {
	f := EnquiryForm{}
	f.AddressPanel.Toggle()

	f.SelectAddress(models.Address{ID: "a7", Label: "Home"})

	assert.Equal(t, "a7", f.AddressID)
	assert.False(t, f.AddressPanel.Open)
	assert.Equal(t, "Home", f.AddressPanel.Display(PlaceholderAddress))
}

func TestFormatMobileStripsWhitespace(t *testing.T) {
	assert.Equal(t, "+971501234567", FormatMobile("+971", " 50 123\t4567 "))
	assert.Equal(t, "+971501234567", FormatMobile("", "501234567"))
	assert.Equal(t, "+44791112345", FormatMobile("+44 ", "7911 12345"))
	assert.Equal(t, "+447911123456", FormatMobile("+971", " +44 7911 123456"))
}

func TestEnquiryMissingAndReady(t *testing.T) {
	f := completeEnquiry()
	assert.Empty(t, f.Missing())
	assert.True(t, f.Ready())

	f.AddressID = ""
	f.BudgetTo = 0
	f.FullName = "   "
	assert.Equal(t, []string{"fullname", "address_id", "budget_to"}, f.Missing())
	assert.False(t, f.Ready())
}

func TestEnquiryPayload(t *testing.T) {
	p := completeEnquiry().Payload()

	assert.Equal(t, "+971501234567", p.Mobile)
	assert.Equal(t, "mariam@example.com", p.Email)
	assert.Equal(t, "a1", p.AddressID)
	assert.Equal(t, 5000.0, p.BudgetFrom)
	assert.Equal(t, 15000.0, p.BudgetTo)
}

func TestEnquiryApplyOnlyTouchesGivenFields(t *testing.T) {
	f := completeEnquiry()
	scope := "Bathroom"
	drawing := true
	f.Apply(EnquiryPatch{ScopeOfWork: &scope, ExistingDrawing: &drawing})

	assert.Equal(t, "Bathroom", f.ScopeOfWork)
	assert.True(t, f.ExistingDrawing)
	assert.Equal(t, "Mariam Khan", f.FullName)
}

func TestUsePlanFillsScope(t *testing.T) {
	f := EnquiryForm{}
	plan, ok := models.FindPackagePlan("premium")
	assert.True(t, ok)

	f.UsePlan(plan)
	assert.Equal(t, "premium", f.PlanSlug)
	assert.Equal(t, "Package: Premium", f.ScopeOfWork)
}

func TestEmergencySelectService(t *testing.T) {
	svc := models.Service{
		ID:    "s1",
		Title: "Plumbing",
		SubServices: []models.SubService{
			{ID: "s1-1", Title: "Leak repair"},
		},
	}

	f := EmergencyForm{}
	f.ServicePanel.Toggle()
	sub, ok := svc.SubService("s1-1")
	assert.True(t, ok)
	f.SelectService(svc, &sub)

	assert.Equal(t, "s1", f.ServiceID)
	assert.Equal(t, "s1-1", f.SubServiceID)
	assert.False(t, f.ServicePanel.Open)
	assert.Equal(t, "Plumbing / Leak repair", f.ServicePanel.Display(PlaceholderService))

	f.SelectService(svc, nil)
	assert.Empty(t, f.SubServiceID)
	assert.Equal(t, "Plumbing", f.ServicePanel.Display(PlaceholderService))
}

func TestEmergencyMissingAndPayload(t *testing.T) {
	f := EmergencyForm{FullName: "Omar", Email: "omar@example.com", Mobile: "501234567"}
	assert.Equal(t, []string{"service_id", "address_id", "description"}, f.Missing())

	f.ServiceID = "s1"
	f.AddressID = "a1"
	f.Description = "Water leaking from ceiling"
	assert.True(t, f.Ready())

	p := f.Payload()
	assert.Equal(t, "+971501234567", p.Mobile)
	assert.Equal(t, "s1", p.ServiceID)
}

func TestPrefillKeepsTypedValues(t *testing.T) {
	f := EnquiryForm{FullName: "Typed Name"}
	f.Prefill(models.User{FullName: "Profile Name", Email: "p@example.com", Mobile: "+971509998877"})

	assert.Equal(t, "Typed Name", f.FullName)
	assert.Equal(t, "p@example.com", f.Email)
	assert.Equal(t, "+971", f.CountryCode)
	assert.Equal(t, "509998877", f.Mobile)
}

func TestPrefillKeepsForeignMobileWhole(t *testing.T) {
	u := models.User{FullName: "Tom Reed", Email: "tom@example.co.uk", Mobile: "+447911123456"}

	enq := completeEnquiry()
	enq.CountryCode = ""
	enq.Mobile = ""
	enq.Prefill(u)
	assert.Empty(t, enq.CountryCode)
	assert.Equal(t, "+447911123456", enq.Mobile)
	assert.Equal(t, "+447911123456", enq.Payload().Mobile)

	em := EmergencyForm{}
	em.Prefill(u)
	assert.Equal(t, "+447911123456", em.Payload().Mobile)

	em = EmergencyForm{}
	em.Prefill(models.User{Mobile: "501234567"})
	assert.Equal(t, "+971", em.CountryCode)
	assert.Equal(t, "+971501234567", em.Payload().Mobile)
}

func TestIncompleteError(t *testing.T) {
	var err error = &IncompleteError{Missing: []string{"email"}}
	ie, ok := AsIncomplete(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"email"}, ie.Missing)
}
