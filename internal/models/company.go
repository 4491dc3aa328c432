package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyCodePrefix prefixes the code minted from SequenceCompanyNovusarc.
const CompanyCodePrefix = "COMP_NOVSARC"

type Company struct {
	ID                  string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name                string    `gorm:"type:varchar(200);not null;index" json:"name"`
	CompanyCode         string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"companyCode"`
	CompanyCodeNovusarc string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"companyCode_novusarc"`
	Slug                string    `gorm:"type:varchar(220);index" json:"slug"`
	Website             string    `gorm:"type:varchar(255)" json:"website,omitempty"`
	Description         string    `gorm:"type:text" json:"description,omitempty"`
	IsActive            bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy           string    `gorm:"type:varchar(64)" json:"createdBy,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses every run of other characters to "-".
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// CompanyPatch holds the editable fields. Both company codes are fixed once
// minted.
type CompanyPatch struct {
	Name        *string
	Website     *string
	Description *string
}
