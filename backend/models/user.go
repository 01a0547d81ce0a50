package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"_id"`
	Name         string                      `gorm:"not null" json:"name"`
	Email        string                      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string                      `gorm:"not null" json:"-"`
	IsAdmin      bool                        `gorm:"not null;default:false" json:"isAdmin"`
	Interests    datatypes.JSONSlice[string] `json:"interests"`
	Goals        datatypes.JSONSlice[string] `json:"goals"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Interests == nil {
		u.Interests = datatypes.JSONSlice[string]{}
	}
	if u.Goals == nil {
		u.Goals = datatypes.JSONSlice[string]{}
	}
	return nil
}

// SetPassword stores the bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

func (u *User) MatchPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
