package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type User struct {
	ID        string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `json:"-"`
	Videos    []string  `gorm:"-" json:"videos"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserVideo is one entry of a user's published-videos list. Entries are only
// ever appended; ID gives the list order.
type UserVideo struct {
	ID      uint   `gorm:"primary_key"`
	UserID  string `gorm:"index;not null;type:varchar(36)"`
	VideoID string `gorm:"not null;type:varchar(36)"`
}

type VideoMeta struct {
	Views int64 `gorm:"not null" json:"views"`
}

type Video struct {
	ID          string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Hashtags    Hashtags  `gorm:"type:text" json:"hashtags"`
	OwnerID     string    `gorm:"column:owner;index;not null;type:varchar(36)" json:"owner"`
	FileURL     string    `gorm:"column:file_url;not null" json:"fileUrl"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Meta        VideoMeta `gorm:"embedded;embedded_prefix:meta_" json:"meta"`

	// Author is the resolved owner. It is nil when the owner no longer exists.
	Author *User `gorm:"-" json:"author,omitempty"`
}

func (u *User) BeforeCreate(scope *gorm.Scope) error {
	if u.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

func (v *Video) BeforeCreate(scope *gorm.Scope) error {
	if v.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
