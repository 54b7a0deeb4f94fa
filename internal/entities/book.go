package entities

import (
	"time"
)

// Book is a catalog entry with an aggregate star rating. Rating holds the
// running average of all votes cast; VoteCount is the number of votes that
// produced it. Rows are removed permanently on delete, so there is no
// soft-delete column.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"index;size:512" json:"title"`
	Author        string    `gorm:"size:256" json:"author"`
	ISBN          string    `gorm:"uniqueIndex;size:20" json:"isbn"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	PublishedYear int       `json:"published_year,omitempty"`
	Rating        float64   `gorm:"default:0" json:"rating"`
	VoteCount     int       `gorm:"default:0" json:"vote_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
