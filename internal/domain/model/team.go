package model

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultDepartment holds members saved without a department.
const DefaultDepartment = "Other"

// TeamMember is a person listed on the team page.
type TeamMember struct {
	ID          string       `json:"id"`
	Name        string       `json:"name" validate:"required,max=100"`
	Role        string       `json:"role" validate:"required,max=100"`
	Department  string       `json:"department" validate:"max=100"`
	Year        string       `json:"year" validate:"max=20"`
	Photo       string       `json:"photo" validate:"omitempty,weblink"`
	Bio         string       `json:"bio" validate:"max=2000"`
	SocialMedia []SocialLink `json:"socialMedia" validate:"dive"`
	Order       int          `json:"order"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SocialLink is a profile link on a member card.
type SocialLink struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,weblink"`
}

// Department is one section of the team page.
type Department struct {
	Name    string       `json:"name"`
	Leads   []TeamMember `json:"leads"`
	Members []TeamMember `json:"members"`
}

// Board is the leadership block at the top of the team page.
type Board struct {
	President *TeamMember  `json:"president"`
	Members   []TeamMember `json:"members"`
}

var (
	boardRole = regexp.MustCompile(`(?i)president|head|secretary`)
	leadRole  = regexp.MustCompile(`(?i)lead|head|president`)
)

// Normalize trims fields and applies defaults.
func (m *TeamMember) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = strings.TrimSpace(m.Role)
	m.Department = strings.TrimSpace(m.Department)
	m.Year = strings.TrimSpace(m.Year)
	m.Photo = strings.TrimSpace(m.Photo)
	m.Bio = strings.TrimSpace(m.Bio)
	if m.Department == "" {
		m.Department = DefaultDepartment
	}
	if m.SocialMedia == nil {
		m.SocialMedia = []SocialLink{}
	}
}

// Validate checks field constraints.
func (m *TeamMember) Validate() error {
	return check(m)
}

// IsPresident reports whether the member's role is exactly president.
func (m *TeamMember) IsPresident() bool {
	return strings.EqualFold(strings.TrimSpace(m.Role), "president")
}

// IsBoard reports whether the member sits on the board.
func (m *TeamMember) IsBoard() bool {
	return boardRole.MatchString(m.Role)
}

// IsLead reports whether the member leads their department.
func (m *TeamMember) IsLead() bool {
	return leadRole.MatchString(m.Role)
}

// SortMembers orders members by Order, then name.
func SortMembers(members []TeamMember) {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Order != members[j].Order {
			return members[i].Order < members[j].Order
		}
		return strings.ToLower(members[i].Name) < strings.ToLower(members[j].Name)
	})
}

// GroupByDepartment splits members into departments in order of first
// appearance, separating leads from the rest.
func GroupByDepartment(members []TeamMember) []Department {
	sorted := append([]TeamMember(nil), members...)
	SortMembers(sorted)

	index := map[string]int{}
	var out []Department
	for _, m := range members {
		name := m.Department
		if name == "" {
			name = DefaultDepartment
		}
		if _, ok := index[name]; !ok {
			index[name] = len(out)
			out = append(out, Department{Name: name, Leads: []TeamMember{}, Members: []TeamMember{}})
		}
	}
	for _, m := range sorted {
		name := m.Department
		if name == "" {
			name = DefaultDepartment
		}
		d := &out[index[name]]
		if m.IsLead() {
			d.Leads = append(d.Leads, m)
		} else {
			d.Members = append(d.Members, m)
		}
	}
	return out
}

// BoardOf picks the president and the other board members.
func BoardOf(members []TeamMember) Board {
	sorted := append([]TeamMember(nil), members...)
	SortMembers(sorted)

	b := Board{Members: []TeamMember{}}
	for i := range sorted {
		m := sorted[i]
		switch {
		case b.President == nil && m.IsPresident():
			b.President = &m
		case m.IsBoard():
			b.Members = append(b.Members, m)
		}
	}
	return b
}
