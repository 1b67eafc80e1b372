package listing

// Accordion allows at most one expanded item.
type Accordion struct {
	ID string `json:"expanded_id,omitempty"`
}

// Toggle expands id, collapsing whatever was open; toggling the open item
// collapses it.
func (a *Accordion) Toggle(id string) {
	if a.ID == id {
		a.ID = ""
		return
	}
	a.ID = id
}

func (a Accordion) IsExpanded(id string) bool {
	return id != "" && a.ID == id
}

// ExpandSet lets any number of items be expanded independently.
type ExpandSet map[string]bool

func NewExpandSet(ids ...string) ExpandSet {
	s := ExpandSet{}
	for _, id := range ids {
		if id != "" {
			s[id] = true
		}
	}
	return s
}

func (s ExpandSet) Toggle(id string) {
	if s[id] {
		delete(s, id)
		return
	}
	s[id] = true
}

func (s ExpandSet) IsExpanded(id string) bool {
	return s[id]
}
