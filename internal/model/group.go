package model

import (
	"time"

	"gorm.io/gorm"
)

// 群组可见性
type GroupType string

const (
	GroupTypePublic  GroupType = "public"
	GroupTypePrivate GroupType = "private"
)

// 群组管理模式
type ManagementType string

const (
	ManagementTypeEqual   ManagementType = "equal"
	ManagementTypeFounder ManagementType = "founder"
	ManagementTypeAdmin   ManagementType = "admin"
)

type Group struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Type           GroupType      `gorm:"type:varchar(20);not null" json:"type"`
	ManagementType ManagementType `gorm:"type:varchar(20);not null" json:"management_type"`
	FounderID      uint           `gorm:"not null" json:"founder_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Founder User          `gorm:"foreignKey:FounderID" json:"-"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"-"`
}
