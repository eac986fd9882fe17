package repository

import (
	"errors"

	"go-favor-exchange/internal/model"

	"gorm.io/gorm"
)

type GroupMemberRepository struct {
	db *gorm.DB
}

func NewGroupMemberRepository(db *gorm.DB) *GroupMemberRepository {
	return &GroupMemberRepository{db: db}
}

// 返回绑定到事务的repository副本
func (r *GroupMemberRepository) WithTx(tx *gorm.DB) *GroupMemberRepository {
	return &GroupMemberRepository{db: tx}
}

// 将用户添加到群组
func (r *GroupMemberRepository) AddMember(groupID, userID uint, role model.MemberRole) (*model.GroupMember, error) {
	if role == "" {
		role = model.RoleMember
	}
	member := &model.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    role,
	}
	if err := r.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// 查找特定群组的特定成员
func (r *GroupMemberRepository) FindMember(groupID, userID uint) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 成员不存在
		}
		return nil, err
	}
	return &member, nil
}

// 群组的所有成员
func (r *GroupMemberRepository) FindGroupMembers(groupID uint) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.db.Where("group_id = ?", groupID).Order("joined_at ASC").Find(&members).Error
	return members, err
}

// 将用户从群组中移除。返回是否确实删除了成员行。
func (r *GroupMemberRepository) RemoveMember(groupID, userID uint) (bool, error) {
	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&model.GroupMember{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
