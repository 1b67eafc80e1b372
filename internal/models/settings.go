package models

type Settings struct {
	Phone     string            `json:"phone"`
	Email     string            `json:"email"`
	WhatsApp  string            `json:"whatsapp"`
	Address   string            `json:"address"`
	Socials   map[string]string `json:"socials"`
	Emergency string            `json:"emergency_phone"`
}

type ContactRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Message  string `json:"message"`
}
