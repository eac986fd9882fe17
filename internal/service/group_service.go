package service

import (
	"fmt"

	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/repository"
	"go-favor-exchange/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GroupService 处理群组与成员关系
type GroupService struct {
	db               *gorm.DB
	groupRepo        *repository.GroupRepository
	memberRepo       *repository.GroupMemberRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
}

func NewGroupService(db *gorm.DB, groupRepo *repository.GroupRepository, memberRepo *repository.GroupMemberRepository, userRepo *repository.UserRepository, notificationRepo *repository.NotificationRepository) *GroupService {
	return &GroupService{
		db:               db,
		groupRepo:        groupRepo,
		memberRepo:       memberRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

type CreateGroupRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Description    string `json:"description" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=public private"`
	ManagementType string `json:"management_type" binding:"required,oneof=equal founder admin"`
}

// 创建群组，创建者自动成为founder成员(repository层保证同一事务)
func (s *GroupService) CreateGroup(founderID uint, req CreateGroupRequest) (*model.Group, error) {
	founder, err := s.userRepo.FindByID(founderID)
	if err != nil {
		return nil, err
	}
	if founder == nil {
		return nil, ErrUserNotFound
	}

	group := &model.Group{
		Name:           req.Name,
		Description:    req.Description,
		Type:           model.GroupType(req.Type),
		ManagementType: model.ManagementType(req.ManagementType),
		FounderID:      founderID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	logger.L.Info("Group created", zap.Uint("groupID", group.ID), zap.Uint("founderID", founderID))
	return group, nil
}

// 加入群组: 立即插入member行，(group, user)唯一，重复加入被拒绝。
// 加入成功后通知founder。
func (s *GroupService) Join(groupID, userID uint) (*model.GroupMember, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.memberRepo.FindMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	var member *model.GroupMember
	err = s.db.Transaction(func(tx *gorm.DB) error {
		member, err = s.memberRepo.WithTx(tx).AddMember(groupID, userID, model.RoleMember)
		if err != nil {
			return err
		}

		// 通知founder有新成员加入
		notification := &model.Notification{
			UserID:    group.FounderID,
			Type:      model.NotificationTypeGroupRequest,
			Title:     "New Group Member",
			Message:   fmt.Sprintf("%s joined your group %q.", user.Email, group.Name),
			RelatedID: &group.ID,
			Status:    model.NotificationStatusUnread,
		}
		return s.notificationRepo.WithTx(tx).Create(notification)
	})
	if err != nil {
		return nil, err
	}

	logger.L.Info("User joined group", zap.Uint("groupID", groupID), zap.Uint("userID", userID))
	return member, nil
}

// 群组所有成员
func (s *GroupService) ListMembers(groupID uint) ([]model.GroupMember, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return s.memberRepo.FindGroupMembers(groupID)
}

// 移除群组成员。founder不可被移除。
func (s *GroupService) RemoveMember(groupID, userID uint) error {
	member, err := s.memberRepo.FindMember(groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Role == model.RoleFounder {
		return ErrCannotRemoveFounder
	}

	removed, err := s.memberRepo.RemoveMember(groupID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrMemberNotFound
	}
	return nil
}

// 所有公开群组
func (s *GroupService) ListPublic() ([]model.Group, error) {
	return s.groupRepo.FindPublic()
}

// 某用户所属的群组
func (s *GroupService) ListByUser(userID uint) ([]model.Group, error) {
	return s.groupRepo.FindUserGroups(userID)
}
