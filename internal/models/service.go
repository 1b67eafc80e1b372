package models

type SubService struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Slug        string `json:"slug"`
}

type Service struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Slug        string       `json:"slug"`
	SubServices []SubService `json:"sub_services"`
}

func (s Service) SubService(id string) (SubService, bool) {
	for _, sub := range s.SubServices {
		if sub.ID == id {
			return sub, true
		}
	}
	return SubService{}, false
}
