package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exactfit/customer-web/internal/models"
)

func TestTemplatesRenderEveryPage(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	pages := map[string]map[string]any{
		"home":           {"Plans": models.PackagePlans},
		"services":       {"Services": []models.Service{{Title: "Plumbing", Slug: "plumbing"}}},
		"service_detail": {"Service": models.Service{Title: "Plumbing"}},
		"packages":       {"Plans": models.PackagePlans},
		"enquiry":        {"Plan": "premium"},
		"emergency":      {},
		"contact":        {},
		"signin":         {"OTPBoxes": []int{0, 1, 2, 3, 4, 5}},
		"profile_setup":  {"Labels": models.AddressLabels},
		"dashboard":      {"Tab": "tickets", "TicketStatuses": models.TicketStatusOptions},
		"error":          {"Message": "gone"},
	}

	for page, data := range pages {
		data["Page"] = page
		data["Title"] = page
		var buf bytes.Buffer
		require.NoError(t, tmpl.ExecuteTemplate(&buf, "base", data), page)
		assert.Contains(t, buf.String(), `data-page="`+page+`"`, page)
	}
}

func TestMapsScriptOnlyWhenGiven(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var with, without bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&with, "base", map[string]any{
		"Page": "enquiry", "MapsScript": "https://maps.googleapis.com/maps/api/js?libraries=places&key=k",
	}))
	require.NoError(t, tmpl.ExecuteTemplate(&without, "base", map[string]any{"Page": "contact"}))

	assert.Contains(t, with.String(), "maps.googleapis.com")
	assert.NotContains(t, without.String(), "maps.googleapis.com")
}

func TestFuncs(t *testing.T) {
	f := Funcs()
	price := f["price"].(func(float64, string) string)
	stars := f["stars"].(func(int) string)

	assert.Equal(t, "AED 3,999", price(3999, "AED"))
	assert.Equal(t, "AED 12,500", price(12500, "AED"))
	assert.Equal(t, "★★★☆☆", stars(3))
}
