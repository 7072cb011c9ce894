// Package catalog serves the read-only candidate and party listings of the
// development backend.
package catalog

import "sync"

type Candidate struct {
	ID              int64  `json:"id"`
	Name            string `json:"candidate_name"`
	Manifesto       string `json:"manifesto,omitempty"`
	Votes           int64  `json:"votes"`
	SupportersCount int64  `json:"supporters_count"`
	Department      string `json:"department,omitempty"`
	Structure       string `json:"structure,omitempty"`
}

type Party struct {
	ID              int64  `json:"id"`
	Name            string `json:"party_name"`
	Manifesto       string `json:"manifesto,omitempty"`
	Votes           int64  `json:"votes"`
	SupportersCount int64  `json:"supporters_count"`
	Leader          string `json:"party_leader,omitempty"`
	Structure       string `json:"structure,omitempty"`
}

// Store holds the listings. Reads return copies, never nil.
type Store struct {
	mu         sync.RWMutex
	candidates []Candidate
	parties    []Party
}

func NewStore(candidates []Candidate, parties []Party) *Store {
	return &Store{
		candidates: append([]Candidate(nil), candidates...),
		parties:    append([]Party(nil), parties...),
	}
}

// NewSeededStore returns a Store with a small demo data set.
func NewSeededStore() *Store {
	return NewStore(
		[]Candidate{
			{ID: 1, Name: "Amina Njoroge", Manifesto: "Longer library hours", Votes: 120, SupportersCount: 48, Department: "Engineering", Structure: "Student Council"},
			{ID: 2, Name: "Brian Otieno", Manifesto: "Cheaper cafeteria meals", Votes: 98, SupportersCount: 31, Department: "Business", Structure: "Student Council"},
			{ID: 3, Name: "Caro Wanjiku", Manifesto: "Better campus Wi-Fi", Votes: 143, SupportersCount: 57, Department: "Computing", Structure: "Hostel Committee"},
		},
		[]Party{
			{ID: 1, Name: "Forward Together", Manifesto: "Transparency in student funds", Votes: 210, SupportersCount: 80, Leader: "Amina Njoroge", Structure: "Student Council"},
			{ID: 2, Name: "Campus First", Manifesto: "Facilities before festivals", Votes: 151, SupportersCount: 62, Leader: "Brian Otieno", Structure: "Student Council"},
		},
	)
}

func (s *Store) Candidates() []Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

func (s *Store) Parties() []Party {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Party, len(s.parties))
	copy(out, s.parties)
	return out
}
