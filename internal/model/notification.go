package model

import (
	"time"

	"gorm.io/gorm"
)

// 通知类型
type NotificationType string

const (
	NotificationTypeGroupRequest   NotificationType = "group_request"
	NotificationTypeFavorAccepted  NotificationType = "favor_accepted"
	NotificationTypeFavorCompleted NotificationType = "favor_completed"
)

// 通知状态，只允许从unread向前转移
type NotificationStatus string

const (
	NotificationStatusUnread   NotificationStatus = "unread"
	NotificationStatusRead     NotificationStatus = "read"
	NotificationStatusAccepted NotificationStatus = "accepted"
	NotificationStatusRejected NotificationStatus = "rejected"
)

// 状态只能向前转移: unread -> {read, accepted, rejected}，不允许回退。
func (s NotificationStatus) CanTransitionTo(next NotificationStatus) bool {
	if s != NotificationStatusUnread {
		return false
	}
	switch next {
	case NotificationStatusRead, NotificationStatusAccepted, NotificationStatusRejected:
		return true
	}
	return false
}

type Notification struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"not null;index" json:"user_id"`
	Type      NotificationType   `gorm:"type:varchar(30);not null" json:"type"`
	Title     string             `gorm:"type:varchar(200);not null" json:"title"`
	Message   string             `gorm:"type:text;not null" json:"message"`
	RelatedID *uint              `json:"related_id"` // 关联的favor或group ID(如果有)
	Status    NotificationStatus `gorm:"type:varchar(20);not null;default:'unread'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"-"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
