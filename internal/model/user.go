package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_email" json:"email"`
	Password string `gorm:"type:varchar(255)" json:"-"`
	// 积分余额，始终 >= 0。初始值由service层写入，
	// 不用列默认值: gorm会跳过零值插入，测试中无法创建0余额用户。
	Credits   int            `gorm:"not null" json:"credits"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
