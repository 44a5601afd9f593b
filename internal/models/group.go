package models

import "time"

// GroupType describes what kind of articles a group collects.
type GroupType string

const (
	// GroupTypeComparison - one "own" article against competitors.
	GroupTypeComparison GroupType = "comparison"
	// GroupTypeVariants - variants of the same product.
	GroupTypeVariants GroupType = "variants"
	// GroupTypeSimilar - similar products without an "own" reference.
	GroupTypeSimilar GroupType = "similar"
)

// Valid reports whether the group type is one of the enumerated values.
func (t GroupType) Valid() bool {
	switch t {
	case GroupTypeComparison, GroupTypeVariants, GroupTypeSimilar:
		return true
	default:
		return false
	}
}

// Role describes how a member participates in its group. Comparison groups
// hold exactly one "own" member and any number of "competitor" members;
// every member of the other group types carries the "item" role.
type Role string

const (
	RoleOwn        Role = "own"
	RoleCompetitor Role = "competitor"
	RoleItem       Role = "item"
)

// ArticleGroup is a named collection of tracked articles owned by one user.
type ArticleGroup struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	GroupType GroupType `json:"group_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupMember associates an article number with a group. Position records
// insertion order and is never rewritten on removal.
type GroupMember struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	ArticleNumber string    `json:"article_number"`
	Role          Role      `json:"role"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"created_at"`
}
