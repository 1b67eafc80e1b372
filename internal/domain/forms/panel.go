package forms

// Panel is a click-to-toggle option list (address picker, service picker).
// It is not a modal: choosing an option copies it and closes the panel.
type Panel struct {
	Open       bool   `json:"open"`
	SelectedID string `json:"selected_id,omitempty"`
	Label      string `json:"label,omitempty"`
}

func (p *Panel) Toggle() {
	p.Open = !p.Open
}

func (p *Panel) Choose(id, label string) {
	p.SelectedID = id
	p.Label = label
	p.Open = false
}

func (p *Panel) Clear() {
	*p = Panel{}
}

// Display is the text on the panel's trigger.
func (p Panel) Display(placeholder string) string {
	if p.Label == "" {
		return placeholder
	}
	return p.Label
}
