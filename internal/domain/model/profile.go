package model

import "time"

// Certification is one credential on a profile: a display name plus an
// optional verification link.
type Certification struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Profile describes a registered user as stored.
type Profile struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	UserName         string          `json:"user_name,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Location         string          `json:"location,omitempty"`
	Bio              string          `json:"bio,omitempty"`
	Website          string          `json:"website,omitempty"`
	AvatarURL        string          `json:"avatar_url,omitempty"`
	Skills           []string        `json:"skills"`
	PreferredDomains []string        `json:"preferred_domains"`
	Certifications   []Certification `json:"certifications"`
	Experience       []string        `json:"experience"`
	Availability     bool            `json:"availability"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Session is the product of a successful authorization-code exchange.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}
