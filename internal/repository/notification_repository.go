package repository

import (
	"errors"

	"go-favor-exchange/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// 返回绑定到事务的repository副本
func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// 新建通知
func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

// 通过ID查找通知
func (r *NotificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 通知不存在
		}
		return nil, err
	}
	return &notification, nil
}

// 某用户的所有通知，按创建时间倒序
func (r *NotificationRepository) FindByUser(userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// 更新通知状态
func (r *NotificationRepository) UpdateStatus(id uint, status model.NotificationStatus) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).Update("status", status).Error
}
