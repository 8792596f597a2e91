package handler

import "time"

type socialLinksRequest struct {
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

// updateProfileRequest carries the scalar profile fields. Skills arrive
// as a comma-separated string and are split server-side.
type updateProfileRequest struct {
	Status         string             `json:"status" validate:"required"`
	Skills         string             `json:"skills" validate:"required"`
	Company        string             `json:"company"`
	Website        string             `json:"website"`
	Location       string             `json:"location"`
	Bio            string             `json:"bio"`
	GithubUsername string             `json:"github_username"`
	Social         socialLinksRequest `json:"social"`
}

type experienceRequest struct {
	Title       string     `json:"title" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type educationRequest struct {
	School       string     `json:"school" validate:"required"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"field_of_study" validate:"required"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}
