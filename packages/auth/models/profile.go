package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Roles []string

// Value stores the roles as a jsonb array.
func (r Roles) Value() (driver.Value, error) {
	if len(r) == 0 {
		return json.Marshal(DefaultRoles())
	}
	return json.Marshal(r)
}

func (r *Roles) Scan(value interface{}) error {
	if value == nil {
		*r = DefaultRoles()
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	}
	return errors.New("roles: unsupported column type")
}

// Profile owns a save slot: one league, one tournament and a match history.
// Players sign in with a nickname and a short PIN.
type Profile struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Nickname   string         `json:"nickname" gorm:"size:32;uniqueIndex;not null"`
	PINHash    string         `json:"-" gorm:"column:pin_hash;not null"`
	Roles      Roles          `json:"roles" gorm:"type:jsonb;default:'[\"user\"]'::jsonb"`
	LastLogin  *time.Time     `json:"last_login"`
	LoginCount int            `json:"login_count" gorm:"default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p *Profile) AddRole(role string) {
	if !p.HasRole(role) {
		p.Roles = append(p.Roles, role)
	}
}

// TouchLogin records a sign-in. The counter moves once per calendar day.
func (p *Profile) TouchLogin(now time.Time) {
	if p.LastLogin == nil || p.LastLogin.Format("2006-01-02") != now.Format("2006-01-02") {
		p.LoginCount++
	}
	p.LastLogin = &now
}

type RegisterRequest struct {
	Nickname string `json:"nickname" binding:"required,min=2,max=32"`
	PIN      string `json:"pin" binding:"required,numeric,min=4,max=8"`
}

type LoginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	PIN      string `json:"pin" binding:"required"`
}

type AuthResponse struct {
	TokenResponse
	Profile Profile `json:"profile"`
}
