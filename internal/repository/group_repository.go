package repository

import (
	"errors"

	"go-favor-exchange/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// 返回绑定到事务的repository副本
func (r *GroupRepository) WithTx(tx *gorm.DB) *GroupRepository {
	return &GroupRepository{db: tx}
}

// 创建新群组，并在同一事务中将创建者添加为founder成员
func (r *GroupRepository) Create(group *model.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 创建群组
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		// 将创建者添加为founder
		founderMember := &model.GroupMember{
			GroupID: group.ID,
			UserID:  group.FounderID,
			Role:    model.RoleFounder,
		}
		if err := tx.Create(founderMember).Error; err != nil {
			return err
		}
		return nil
	})
}

// 根据ID查找群组
func (r *GroupRepository) FindByID(groupID uint) (*model.Group, error) {
	var group model.Group
	err := r.db.First(&group, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // group not found
		}
		return nil, err
	}
	return &group, nil
}

// 所有公开群组，按创建时间倒序
func (r *GroupRepository) FindPublic() ([]model.Group, error) {
	var groups []model.Group
	err := r.db.Where("type = ?", model.GroupTypePublic).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

// 查找用户所属的所有群组
func (r *GroupRepository) FindUserGroups(userID uint) ([]model.Group, error) {
	var groups []model.Group
	// 通过 group_members 连接查询
	err := r.db.Joins("JOIN group_members ON groups.id = group_members.group_id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}
