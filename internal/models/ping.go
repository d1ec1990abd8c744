package models

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryEvent Category = "event"
	CategorySale  Category = "sale"
	CategoryHelp  Category = "help"
	CategoryMisc  Category = "misc"
)

// ValidCategory reports whether c is one of the known categories.
// Empty is allowed: pings without a category fall into the misc bucket on display.
func ValidCategory(c Category) bool {
	switch c {
	case "", CategoryEvent, CategorySale, CategoryHelp, CategoryMisc:
		return true
	}
	return false
}

type Ping struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text        string    `gorm:"type:varchar(280);not null" json:"text"`
	Category    Category  `gorm:"type:varchar(10);index" json:"category"`
	Timestamp   time.Time `gorm:"index;not null" json:"timestamp"` // Set once at creation, never updated
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Location    string    `gorm:"type:varchar(100);index" json:"location"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`

	// Derived at creation time from the text, not refreshed on edits.
	Hashtags       string `gorm:"type:varchar(500)" json:"hashtags"`
	SeoDescription string `gorm:"type:text" json:"seo_description"`

	// Foreign Key Relationship
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`

	// Two independent voter sets. A user must never be in both at once;
	// the vote service enforces that, not the schema.
	Upvoters   []User `gorm:"many2many:ping_upvoters;constraint:OnDelete:CASCADE" json:"-"`
	Downvoters []User `gorm:"many2many:ping_downvoters;constraint:OnDelete:CASCADE" json:"-"`
}

// DisplayName masks the author when the ping was posted anonymously.
func (p *Ping) DisplayName() string {
	if p.IsAnonymous {
		return "Anonymous"
	}
	return p.User.Username
}
