package service

import (
	"errors"
	"testing"

	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/repository"

	"gorm.io/gorm"
)

func newTestGroupService(conn *gorm.DB) (*GroupService, *repository.UserRepository, *repository.GroupMemberRepository, *repository.NotificationRepository) {
	userRepo := repository.NewUserRepository(conn)
	groupRepo := repository.NewGroupRepository(conn)
	memberRepo := repository.NewGroupMemberRepository(conn)
	notificationRepo := repository.NewNotificationRepository(conn)
	svc := NewGroupService(conn, groupRepo, memberRepo, userRepo, notificationRepo)
	return svc, userRepo, memberRepo, notificationRepo
}

func groupReq(name string, gtype string) CreateGroupRequest {
	return CreateGroupRequest{
		Name:           name,
		Description:    "a group for testing",
		Type:           gtype,
		ManagementType: "equal",
	}
}

func TestGroupService_CreateGroup(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo, memberRepo, _ := newTestGroupService(conn)

	founder := createTestUser(t, userRepo, "g-founder@example.com", 1)

	group, err := svc.CreateGroup(founder.ID, groupReq("gardeners", "public"))
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if group.FounderID != founder.ID {
		t.Errorf("Expected founderID %v, got %v", founder.ID, group.FounderID)
	}

	// 创建者自动成为founder成员
	member, err := memberRepo.FindMember(group.ID, founder.ID)
	if err != nil {
		t.Fatalf("FindMember() error = %v", err)
	}
	if member == nil {
		t.Fatal("Expected founder to be a member of the new group")
	}
	if member.Role != model.RoleFounder {
		t.Errorf("Expected role founder, got %v", member.Role)
	}

	if _, err := svc.CreateGroup(99999, groupReq("ghost group", "public")); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestGroupService_Join(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo, _, notificationRepo := newTestGroupService(conn)

	founder := createTestUser(t, userRepo, "j-founder@example.com", 1)
	joiner := createTestUser(t, userRepo, "j-joiner@example.com", 1)

	group, err := svc.CreateGroup(founder.ID, groupReq("joiners", "public"))
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}

	member, err := svc.Join(group.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if member.Role != model.RoleMember {
		t.Errorf("Expected role member, got %v", member.Role)
	}

	// founder收到group_request通知
	notifications, _ := notificationRepo.FindByUser(founder.ID)
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 notification for founder, got %v", len(notifications))
	}
	if notifications[0].Type != model.NotificationTypeGroupRequest {
		t.Errorf("Expected group_request notification, got %v", notifications[0].Type)
	}

	// 重复加入被拒绝
	if _, err := svc.Join(group.ID, joiner.ID); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("Expected ErrAlreadyMember, got %v", err)
	}

	if _, err := svc.Join(99999, joiner.ID); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Expected ErrGroupNotFound, got %v", err)
	}
	if _, err := svc.Join(group.ID, 99999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestGroupService_ListMembers(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo, _, _ := newTestGroupService(conn)

	founder := createTestUser(t, userRepo, "lm-founder@example.com", 1)
	joiner := createTestUser(t, userRepo, "lm-joiner@example.com", 1)

	group, _ := svc.CreateGroup(founder.ID, groupReq("members", "public"))
	if _, err := svc.Join(group.ID, joiner.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	members, err := svc.ListMembers(group.ID)
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Errorf("Expected 2 members, got %v", len(members))
	}

	if _, err := svc.ListMembers(99999); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Expected ErrGroupNotFound, got %v", err)
	}
}

func TestGroupService_RemoveMember(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo, memberRepo, _ := newTestGroupService(conn)

	founder := createTestUser(t, userRepo, "rm2-founder@example.com", 1)
	joiner := createTestUser(t, userRepo, "rm2-joiner@example.com", 1)

	group, _ := svc.CreateGroup(founder.ID, groupReq("removals", "public"))
	if _, err := svc.Join(group.ID, joiner.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	if err := svc.RemoveMember(group.ID, joiner.ID); err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	member, _ := memberRepo.FindMember(group.ID, joiner.ID)
	if member != nil {
		t.Error("Expected member to be removed")
	}

	// founder不可被移除
	if err := svc.RemoveMember(group.ID, founder.ID); !errors.Is(err, ErrCannotRemoveFounder) {
		t.Errorf("Expected ErrCannotRemoveFounder, got %v", err)
	}

	if err := svc.RemoveMember(group.ID, joiner.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Expected ErrMemberNotFound, got %v", err)
	}
}

func TestGroupService_Listings(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo, _, _ := newTestGroupService(conn)

	founder := createTestUser(t, userRepo, "gl-founder@example.com", 1)
	outsider := createTestUser(t, userRepo, "gl-outsider@example.com", 1)

	pub, _ := svc.CreateGroup(founder.ID, groupReq("open circle", "public"))
	svc.CreateGroup(founder.ID, groupReq("closed circle", "private"))

	groups, err := svc.ListPublic()
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(groups) != 1 || groups[0].ID != pub.ID {
		t.Error("Expected only the public group")
	}

	mine, err := svc.ListByUser(founder.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("Expected founder in 2 groups, got %v", len(mine))
	}

	none, err := svc.ListByUser(outsider.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected outsider in 0 groups, got %v", len(none))
	}
}
