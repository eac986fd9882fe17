package model

import (
	"time"

	"gorm.io/gorm"
)

// Favor类型
type FavorType string

const (
	FavorTypeRequest FavorType = "request"
	FavorTypeOffer   FavorType = "offer"
)

// Favor完成方式
type FavorLocation string

const (
	FavorLocationRemote     FavorLocation = "remote"
	FavorLocationPresential FavorLocation = "presential"
)

// Favor状态机: active -> accepted -> completed; active <-> suspended (由积分账本驱动)
type FavorStatus string

const (
	FavorStatusActive    FavorStatus = "active"
	FavorStatusSuspended FavorStatus = "suspended"
	FavorStatusAccepted  FavorStatus = "accepted"
	FavorStatusCompleted FavorStatus = "completed"
)

type Favor struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	Title       string        `gorm:"type:varchar(200);not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Type        FavorType     `gorm:"type:varchar(20);not null" json:"type"`
	Location    FavorLocation `gorm:"type:varchar(20);not null" json:"location"`
	Credits     int           `gorm:"not null" json:"credits"` // 发布费用，固定为1
	Status      FavorStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	AcceptedBy  *uint         `gorm:"index" json:"accepted_by"` // 非空当且仅当状态为accepted或completed
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
