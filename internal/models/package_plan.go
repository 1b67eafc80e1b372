package models

import "strings"

type PackagePlan struct {
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Stars    int      `json:"stars"`
	Features []string `json:"features"`
}

// PackagePlans is the yearly maintenance line-up shown on the packages page.
// The "custom" plan is not listed here: its details come from the backend.
var PackagePlans = []PackagePlan{
	{
		Slug:     "basic",
		Name:     "Basic",
		Price:    1499,
		Currency: "AED",
		Stars:    3,
		Features: []string{
			"2 preventive AC maintenance visits",
			"2 plumbing inspections",
			"2 electrical inspections",
			"Call-out support during working hours",
		},
	},
	{
		Slug:     "standard",
		Name:     "Standard",
		Price:    2499,
		Currency: "AED",
		Stars:    4,
		Features: []string{
			"3 preventive AC maintenance visits",
			"4 plumbing and electrical inspections",
			"1 pest control treatment",
			"Priority call-out support",
			"10% off additional services",
		},
	},
	{
		Slug:     "premium",
		Name:     "Premium",
		Price:    3999,
		Currency: "AED",
		Stars:    5,
		Features: []string{
			"4 preventive AC maintenance visits",
			"Unlimited plumbing and electrical call-outs",
			"2 pest control treatments",
			"1 deep cleaning session",
			"24/7 emergency response",
			"20% off additional services",
		},
	},
}

func FindPackagePlan(slug string) (PackagePlan, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, p := range PackagePlans {
		if p.Slug == slug {
			return p, true
		}
	}
	return PackagePlan{}, false
}
