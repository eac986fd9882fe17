package service

import (
	"fmt"

	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/repository"
	"go-favor-exchange/pkg/logger"
	"go-favor-exchange/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FavorService 处理favor生命周期: active -> accepted -> completed。
// active <-> suspended 的转移由LedgerService驱动，不接受用户直接操作。
type FavorService struct {
	db               *gorm.DB
	ledger           *LedgerService
	favorRepo        *repository.FavorRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
}

func NewFavorService(db *gorm.DB, ledger *LedgerService, favorRepo *repository.FavorRepository, userRepo *repository.UserRepository, notificationRepo *repository.NotificationRepository) *FavorService {
	return &FavorService{
		db:               db,
		ledger:           ledger,
		favorRepo:        favorRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// 接受favor: 设置accepted状态与接受者，并通知发布者。
// 不允许接受自己的favor，也不允许接受非active状态的favor。
func (s *FavorService) Accept(favorID, userID uint) (*model.Favor, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var accepted *model.Favor
	err = s.db.Transaction(func(tx *gorm.DB) error {
		favorRepo := s.favorRepo.WithTx(tx)

		favor, err := favorRepo.FindByID(favorID)
		if err != nil {
			return err
		}
		if favor == nil {
			return ErrFavorNotFound
		}
		if favor.UserID == userID {
			return ErrSelfAccept
		}
		if favor.Status != model.FavorStatusActive {
			return ErrFavorNotActive
		}

		// 条件更新保证并发接受时只有一个成功
		ok, err := favorRepo.UpdateStatusIf(favorID, model.FavorStatusActive, model.FavorStatusAccepted, &userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrFavorNotActive
		}

		// 通知发布者
		if err := s.ledger.notifyInTx(tx, favor.UserID, model.NotificationTypeFavorAccepted,
			"Favor Accepted",
			fmt.Sprintf("Your favor %q has been accepted!", favor.Title),
			&favor.ID); err != nil {
			return err
		}

		accepted, err = favorRepo.FindByID(favorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.FavorsAccepted.Inc()
	logger.L.Info("Favor accepted", zap.Uint("favorID", favorID), zap.Uint("acceptedBy", userID))
	return accepted, nil
}

// 完成favor: 只允许从accepted转移，奖励发布者1积分并通知。
// 积分奖励与状态转移在同一事务中提交。
func (s *FavorService) Complete(favorID uint) (*model.Favor, error) {
	var completed *model.Favor
	err := s.db.Transaction(func(tx *gorm.DB) error {
		favorRepo := s.favorRepo.WithTx(tx)

		favor, err := favorRepo.FindByID(favorID)
		if err != nil {
			return err
		}
		if favor == nil {
			return ErrFavorNotFound
		}
		if favor.Status != model.FavorStatusAccepted {
			return ErrFavorNotAccepted
		}

		ok, err := favorRepo.UpdateStatusIf(favorID, model.FavorStatusAccepted, model.FavorStatusCompleted, nil)
		if err != nil {
			return err
		}
		if !ok {
			return ErrFavorNotAccepted
		}

		// 完成favor为发布者赚取1积分
		if _, err := s.ledger.awardInTx(tx, favor.UserID, 1); err != nil {
			return err
		}

		if err := s.ledger.notifyInTx(tx, favor.UserID, model.NotificationTypeFavorCompleted,
			"Favor Completed!",
			fmt.Sprintf("Your favor %q has been completed and you earned 1 credit.", favor.Title),
			&favor.ID); err != nil {
			return err
		}

		completed, err = favorRepo.FindByID(favorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.FavorsCompleted.Inc()
	logger.L.Info("Favor completed", zap.Uint("favorID", favorID))
	return completed, nil
}

// 所有favor，按创建时间倒序
func (s *FavorService) ListAll() ([]model.Favor, error) {
	return s.favorRepo.FindAll()
}

// 某用户发布的favor
func (s *FavorService) ListByUser(userID uint) ([]model.Favor, error) {
	return s.favorRepo.FindByUser(userID)
}

// "公开"favor: 除请求者自己发布之外的所有favor
func (s *FavorService) ListPublic(requesterID uint) ([]model.Favor, error) {
	return s.favorRepo.FindExcludingUser(requesterID)
}
