package models

// Candidate is a person standing in a campus poll.
type Candidate struct {
	ID              int64  `json:"id"`
	Name            string `json:"candidate_name"`
	Manifesto       string `json:"manifesto,omitempty"`
	Votes           int64  `json:"votes"`
	SupportersCount int64  `json:"supporters_count"`
	Department      string `json:"department,omitempty"`
	Structure       string `json:"structure,omitempty"`
	ProfilePicture  string `json:"profile_picture,omitempty"`
	Website         string `json:"website,omitempty"`
}

// Party is a group of candidates.
type Party struct {
	ID              int64  `json:"id"`
	Name            string `json:"party_name"`
	Manifesto       string `json:"manifesto,omitempty"`
	Votes           int64  `json:"votes"`
	SupportersCount int64  `json:"supporters_count"`
	Leader          string `json:"party_leader,omitempty"`
	Structure       string `json:"structure,omitempty"`
	Logo            string `json:"logo,omitempty"`
	Website         string `json:"website,omitempty"`
}
