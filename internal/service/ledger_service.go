package service

import (
	"fmt"

	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/repository"
	"go-favor-exchange/pkg/config"
	"go-favor-exchange/pkg/logger"
	"go-favor-exchange/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LedgerService 维护每个用户的非负积分余额，并驱动favor的挂起/重新激活级联。
// 每个用户隐含一个 {有积分} <-> {零积分} 状态机：
// 余额降到0时该用户其他active的favor全部挂起，余额从0恢复为正时全部重新激活。
type LedgerService struct {
	db               *gorm.DB
	userRepo         *repository.UserRepository
	favorRepo        *repository.FavorRepository
	notificationRepo *repository.NotificationRepository
}

func NewLedgerService(db *gorm.DB, userRepo *repository.UserRepository, favorRepo *repository.FavorRepository, notificationRepo *repository.NotificationRepository) *LedgerService {
	return &LedgerService{
		db:               db,
		userRepo:         userRepo,
		favorRepo:        favorRepo,
		notificationRepo: notificationRepo,
	}
}

// 发布favor的请求。credits字段由客户端提交但被忽略，费用固定为publish_cost。
type PublishFavorRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=request offer"`
	Location    string `json:"location" binding:"required,oneof=remote presential"`
	Credits     int    `json:"credits"`
}

// 发布favor的固定费用
func publishCost() int {
	if c := config.GlobalConfig.Ledger.PublishCost; c > 0 {
		return c
	}
	return 1
}

// 余额是否足够发布一个favor
func (s *LedgerService) CanPublish(userID uint) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUserNotFound
	}
	return user.Credits >= publishCost(), nil
}

// 在单个事务中完成: 守卫扣减积分、创建active状态的favor、
// 余额降到0时挂起该用户其他active的favor并发出一条挂起通知。
func (s *LedgerService) Publish(userID uint, req PublishFavorRequest) (*model.Favor, error) {
	cost := publishCost()
	var favor *model.Favor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		favorRepo := s.favorRepo.WithTx(tx)

		user, err := userRepo.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		// 守卫条件扣减，余额不足时不产生任何变更
		ok, err := userRepo.DeductCredits(userID, cost)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientCredits
		}

		f := &model.Favor{
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			Type:        model.FavorType(req.Type),
			Location:    model.FavorLocation(req.Location),
			Credits:     cost,
			Status:      model.FavorStatusActive,
		}
		if err := favorRepo.Create(f); err != nil {
			return fmt.Errorf("failed to create favor: %w", err)
		}

		// 事务内重读余额，判断是否越过零点
		updated, err := userRepo.FindByID(userID)
		if err != nil {
			return err
		}
		if updated != nil && updated.Credits == 0 {
			suspended, err := favorRepo.BulkUpdateStatus(userID, model.FavorStatusActive, model.FavorStatusSuspended, f.ID)
			if err != nil {
				return err
			}
			// 每个用户一条挂起通知，不按favor逐条发
			if err := s.notifyInTx(tx, userID, model.NotificationTypeFavorCompleted,
				"Requests Suspended",
				"Your active requests have been suspended because you ran out of credits. They will reactivate when you earn new credits.",
				nil); err != nil {
				return err
			}
			metrics.FavorsSuspended.Add(float64(suspended))
			logger.L.Info("Suspended user's active favors on zero balance",
				zap.Uint("userID", userID), zap.Int64("suspended", suspended))
		}

		favor = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.FavorsPublished.Inc()
	metrics.CreditsSpent.Add(float64(cost))
	logger.L.Info("Favor published", zap.Uint("userID", userID), zap.Uint("favorID", favor.ID))
	return favor, nil
}

// 奖励积分。余额从0变为正数时重新激活该用户所有挂起的favor，
// 并发出一条重新激活通知。
func (s *LedgerService) Award(userID uint, amount int) (*model.User, error) {
	var updated *model.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = s.awardInTx(tx, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Award的事务内版本，供favor完成流程在同一事务中复用
func (s *LedgerService) awardInTx(tx *gorm.DB, userID uint, amount int) (*model.User, error) {
	if amount < 0 {
		return nil, ErrNegativeCredits
	}

	userRepo := s.userRepo.WithTx(tx)
	favorRepo := s.favorRepo.WithTx(tx)

	user, err := userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := userRepo.AddCredits(userID, amount); err != nil {
		return nil, err
	}

	if user.Credits == 0 && amount > 0 {
		reactivated, err := favorRepo.BulkUpdateStatus(userID, model.FavorStatusSuspended, model.FavorStatusActive, 0)
		if err != nil {
			return nil, err
		}
		if err := s.notifyInTx(tx, userID, model.NotificationTypeFavorCompleted,
			"Requests Reactivated",
			"Your suspended requests have been reactivated now that you have earned new credits!",
			nil); err != nil {
			return nil, err
		}
		metrics.FavorsReactivated.Add(float64(reactivated))
		logger.L.Info("Reactivated user's suspended favors",
			zap.Uint("userID", userID), zap.Int64("reactivated", reactivated))
	}

	metrics.CreditsEarned.Add(float64(amount))
	return userRepo.FindByID(userID)
}

// 绝对设置余额(PATCH /user/:id/credits)，应用与Publish/Award相同的过零级联规则。
func (s *LedgerService) SetCredits(userID uint, credits int) (*model.User, error) {
	if credits < 0 {
		return nil, ErrNegativeCredits
	}

	var updated *model.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		favorRepo := s.favorRepo.WithTx(tx)

		user, err := userRepo.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		if err := userRepo.SetCredits(userID, credits); err != nil {
			return err
		}

		switch {
		case user.Credits > 0 && credits == 0:
			suspended, err := favorRepo.BulkUpdateStatus(userID, model.FavorStatusActive, model.FavorStatusSuspended, 0)
			if err != nil {
				return err
			}
			if err := s.notifyInTx(tx, userID, model.NotificationTypeFavorCompleted,
				"Requests Suspended",
				"Your active requests have been suspended because you ran out of credits. They will reactivate when you earn new credits.",
				nil); err != nil {
				return err
			}
			metrics.FavorsSuspended.Add(float64(suspended))
		case user.Credits == 0 && credits > 0:
			reactivated, err := favorRepo.BulkUpdateStatus(userID, model.FavorStatusSuspended, model.FavorStatusActive, 0)
			if err != nil {
				return err
			}
			if err := s.notifyInTx(tx, userID, model.NotificationTypeFavorCompleted,
				"Requests Reactivated",
				"Your suspended requests have been reactivated now that you have earned new credits!",
				nil); err != nil {
				return err
			}
			metrics.FavorsReactivated.Add(float64(reactivated))
		}

		updated, err = userRepo.FindByID(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// 在给定事务中追加一条unread通知
func (s *LedgerService) notifyInTx(tx *gorm.DB, userID uint, ntype model.NotificationType, title, message string, relatedID *uint) error {
	notification := &model.Notification{
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		Status:    model.NotificationStatusUnread,
	}
	if err := s.notificationRepo.WithTx(tx).Create(notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	metrics.NotificationsEmitted.WithLabelValues(string(ntype)).Inc()
	return nil
}
