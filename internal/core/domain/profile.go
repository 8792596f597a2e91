package domain

import "time"

// SocialLinks holds the optional social network URLs on a profile.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// Experience is a work history entry embedded in a profile. Entries are
// kept newest-first; the id is assigned at append time and never reused.
type Experience struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

func (e Experience) Key() string { return e.ID }

// Education is a study history entry embedded in a profile.
type Education struct {
	ID           string     `json:"id" bson:"id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"field_of_study" bson:"field_of_study"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

func (e Education) Key() string { return e.ID }

// Profile is the aggregate holding a user's public presence. OwnerID is
// assigned at creation and never reassigned. Version guards the
// read-modify-write cycle on the embedded collections.
type Profile struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	OwnerID        string       `json:"owner_id" bson:"owner_id"`
	Status         string       `json:"status" bson:"status"`
	Skills         []string     `json:"skills" bson:"skills"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty"`
	GithubUsername string       `json:"github_username,omitempty" bson:"github_username,omitempty"`
	Social         SocialLinks  `json:"social" bson:"social"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
	Version        int64        `json:"-" bson:"version"`
}
