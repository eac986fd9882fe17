package service

import (
	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/repository"
	"go-favor-exchange/pkg/metrics"
)

// NotificationService 纯副作用记录器: 追加unread通知、读取列表、向前转移状态。
// 无批处理、无投递保证、无重试。
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, userRepo *repository.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

type CreateNotificationRequest struct {
	Type      string `json:"type" binding:"required,oneof=group_request favor_accepted favor_completed"`
	Title     string `json:"title" binding:"required,max=200"`
	Message   string `json:"message" binding:"required"`
	RelatedID *uint  `json:"related_id"`
}

// 为某用户追加一条unread通知
func (s *NotificationService) Notify(userID uint, req CreateNotificationRequest) (*model.Notification, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	notification := &model.Notification{
		UserID:    userID,
		Type:      model.NotificationType(req.Type),
		Title:     req.Title,
		Message:   req.Message,
		RelatedID: req.RelatedID,
		Status:    model.NotificationStatusUnread,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	metrics.NotificationsEmitted.WithLabelValues(req.Type).Inc()
	return notification, nil
}

// 某用户的通知，按创建时间倒序
func (s *NotificationService) ListByUser(userID uint) ([]model.Notification, error) {
	return s.notificationRepo.FindByUser(userID)
}

// 更新通知状态。只允许 unread -> {read, accepted, rejected}，不允许回退。
func (s *NotificationService) UpdateStatus(id uint, status model.NotificationStatus) (*model.Notification, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	if !notification.Status.CanTransitionTo(status) {
		return nil, ErrInvalidStatusChange
	}

	if err := s.notificationRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.notificationRepo.FindByID(id)
}

// 将单条通知标记为已读
func (s *NotificationService) MarkRead(id uint) (*model.Notification, error) {
	return s.UpdateStatus(id, model.NotificationStatusRead)
}
