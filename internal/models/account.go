package models

import (
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AccountKind string

const (
	KindProjectDeveloper AccountKind = "project_developer"
	KindCompany          AccountKind = "company"
)

// Account is what the auth layer needs from either account kind.
type Account interface {
	AccountID() uuid.UUID
	AccountKind() AccountKind
	AccountEmail() string
	PasswordDigest() string
	SetPasswordDigest(hash string)
	Prepare()
}

// ProjectDeveloper owns assets.
type ProjectDeveloper struct {
	ID           uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AssetType    string    `json:"asset_type"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (d *ProjectDeveloper) AccountID() uuid.UUID { return d.ID }
func (d *ProjectDeveloper) AccountKind() AccountKind { return KindProjectDeveloper }
func (d *ProjectDeveloper) AccountEmail() string { return d.Email }
func (d *ProjectDeveloper) PasswordDigest() string { return d.PasswordHash }
func (d *ProjectDeveloper) SetPasswordDigest(h string) { d.PasswordHash = h }

func (d *ProjectDeveloper) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Email = NormalizeEmail(d.Email)
}

// Company is an organization profile. It does not own assets.
type Company struct {
	ID           uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	Website      string    `json:"website"`
	GSTIN        *string   `json:"GSTIN,omitempty"`
	AboutUs      string    `json:"about_us"`
	CompanySize  int       `json:"company_size"`
	Location     string    `json:"location"`
	Email        string    `json:"email"`
	Contact      string    `json:"contact"`
	PasswordHash string    `json:"-"`
	AssetType    string    `json:"asset_type"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (c *Company) AccountID() uuid.UUID { return c.ID }
func (c *Company) AccountKind() AccountKind { return KindCompany }
func (c *Company) AccountEmail() string { return c.Email }
func (c *Company) PasswordDigest() string { return c.PasswordHash }
func (c *Company) SetPasswordDigest(h string) { c.PasswordHash = h }

func (c *Company) Prepare() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Email = NormalizeEmail(c.Email)
}

// NormalizeEmail matches the lowercase+trim applied before storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(html.EscapeString(strings.TrimSpace(email)))
}
