package models

type Address struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Address   string  `json:"address"`
	Emirate   string  `json:"emirate"`
	Area      string  `json:"area"`
	Building  string  `json:"building"`
	Apartment string  `json:"apartment"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Address labels offered by the address form. Free text is also accepted.
var AddressLabels = []string{"Home", "Work", "Office", "Other"}
