package repository

import (
	"errors"

	"go-favor-exchange/internal/model"

	"gorm.io/gorm"
)

// FavorRepository 处理favor数据持久化
type FavorRepository struct {
	db *gorm.DB
}

func NewFavorRepository(db *gorm.DB) *FavorRepository {
	return &FavorRepository{db: db}
}

// 返回绑定到事务的repository副本
func (r *FavorRepository) WithTx(tx *gorm.DB) *FavorRepository {
	return &FavorRepository{db: tx}
}

// 新建favor
func (r *FavorRepository) Create(favor *model.Favor) error {
	return r.db.Create(favor).Error
}

// 通过ID查找favor
func (r *FavorRepository) FindByID(id uint) (*model.Favor, error) {
	var favor model.Favor
	if err := r.db.First(&favor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // favor不存在
		}
		return nil, err
	}
	return &favor, nil
}

// 按创建时间倒序返回所有favor
func (r *FavorRepository) FindAll() ([]model.Favor, error) {
	var favors []model.Favor
	err := r.db.Order("created_at DESC").Find(&favors).Error
	return favors, err
}

// 某用户发布的所有favor，按创建时间倒序
func (r *FavorRepository) FindByUser(userID uint) ([]model.Favor, error) {
	var favors []model.Favor
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favors).Error
	return favors, err
}

// 排除某用户自己发布的favor，按创建时间倒序
func (r *FavorRepository) FindExcludingUser(userID uint) ([]model.Favor, error) {
	var favors []model.Favor
	err := r.db.Where("user_id <> ?", userID).Order("created_at DESC").Find(&favors).Error
	return favors, err
}

// 条件状态转移: 仅当favor当前处于from状态时更新为to。
// 返回是否有行被更新，用于保证accept等操作的原子性。
func (r *FavorRepository) UpdateStatusIf(favorID uint, from, to model.FavorStatus, acceptedBy *uint) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if acceptedBy != nil {
		updates["accepted_by"] = *acceptedBy
	}
	result := r.db.Model(&model.Favor{}).
		Where("id = ? AND status = ?", favorID, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// 批量转移某用户的favor状态(挂起/重新激活级联)。
// excludeID为0时不排除任何favor。返回受影响的行数。
func (r *FavorRepository) BulkUpdateStatus(userID uint, from, to model.FavorStatus, excludeID uint) (int64, error) {
	query := r.db.Model(&model.Favor{}).
		Where("user_id = ? AND status = ?", userID, from)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	result := query.Update("status", to)
	return result.RowsAffected, result.Error
}
