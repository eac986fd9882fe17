package model

import (
	"time"
)

// 群组成员角色
type MemberRole string

const (
	RoleMember  MemberRole = "member"
	RoleAdmin   MemberRole = "admin"
	RoleFounder MemberRole = "founder"
)

// 每个(group, user)组合至多一行。
// 不使用软删除: 唯一索引下保留已删除行会阻止重新加入。
type GroupMember struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	GroupID   uint       `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`
	Role      MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt  time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt time.Time  `json:"-"`

	Group Group `gorm:"foreignKey:GroupID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
