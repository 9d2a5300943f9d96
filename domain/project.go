package domain

import (
	"strings"
	"time"
)

// MemberRef points at a team member within the scope of one project. It may
// be partially hydrated (id only) until a member fetch resolves it.
type MemberRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Hydrated reports whether the reference carries the full member profile.
func (m *MemberRef) Hydrated() bool {
	return m != nil && m.Name != "" && m.Email != ""
}

// Project groups tasks and a member set.
type Project struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Members     []MemberRef `json:"members,omitempty"`
	TaskCount   int         `json:"taskCount,omitempty"`
	UpdatedAt   time.Time   `json:"updatedAt,omitempty"`
}

// AddMember appends a member reference, keeping the set unique by email.
// References without an email (not yet hydrated) are deduplicated by id.
func (p *Project) AddMember(ref MemberRef) bool {
	if p == nil {
		return false
	}
	for _, existing := range p.Members {
		if ref.Email != "" && strings.EqualFold(existing.Email, ref.Email) {
			return false
		}
		if ref.Email == "" && existing.ID == ref.ID {
			return false
		}
	}
	p.Members = append(p.Members, ref)
	return true
}

// Pagination mirrors the server's list-page metadata.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}
