package repository

import (
	"testing"
	"time"

	"go-favor-exchange/internal/model"
)

func createTestFavor(t *testing.T, repo *FavorRepository, userID uint, status model.FavorStatus, createdAt time.Time) *model.Favor {
	t.Helper()
	favor := &model.Favor{
		UserID:      userID,
		Title:       "test favor",
		Description: "a favor for testing",
		Type:        model.FavorTypeRequest,
		Location:    model.FavorLocationRemote,
		Credits:     1,
		Status:      status,
		CreatedAt:   createdAt,
	}
	if err := repo.Create(favor); err != nil {
		t.Fatalf("Failed to create test favor: %v", err)
	}
	return favor
}

func TestFavorRepository_UpdateStatusIf(t *testing.T) {
	conn := setupTestDB(t)
	userRepo := NewUserRepository(conn)
	repo := NewFavorRepository(conn)

	user := &model.User{Email: "owner@example.com", Credits: 1}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	accepter := &model.User{Email: "accepter@example.com", Credits: 1}
	if err := userRepo.Create(accepter); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	favor := createTestFavor(t, repo, user.ID, model.FavorStatusActive, time.Now())

	// active -> accepted 成功并记录接受者
	ok, err := repo.UpdateStatusIf(favor.ID, model.FavorStatusActive, model.FavorStatusAccepted, &accepter.ID)
	if err != nil {
		t.Fatalf("UpdateStatusIf() error = %v", err)
	}
	if !ok {
		t.Error("Expected status update to succeed from active")
	}

	found, _ := repo.FindByID(favor.ID)
	if found.Status != model.FavorStatusAccepted {
		t.Errorf("Expected status accepted, got %v", found.Status)
	}
	if found.AcceptedBy == nil || *found.AcceptedBy != accepter.ID {
		t.Errorf("Expected acceptedBy %v, got %v", accepter.ID, found.AcceptedBy)
	}

	// 前置状态不匹配时不更新
	ok, err = repo.UpdateStatusIf(favor.ID, model.FavorStatusActive, model.FavorStatusAccepted, &accepter.ID)
	if err != nil {
		t.Fatalf("UpdateStatusIf() error = %v", err)
	}
	if ok {
		t.Error("Expected status update to fail when favor is no longer active")
	}
}

func TestFavorRepository_BulkUpdateStatus(t *testing.T) {
	conn := setupTestDB(t)
	userRepo := NewUserRepository(conn)
	repo := NewFavorRepository(conn)

	user := &model.User{Email: "bulk@example.com", Credits: 1}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	f1 := createTestFavor(t, repo, user.ID, model.FavorStatusActive, time.Now())
	f2 := createTestFavor(t, repo, user.ID, model.FavorStatusActive, time.Now())
	f3 := createTestFavor(t, repo, user.ID, model.FavorStatusAccepted, time.Now())

	// 挂起除f2外所有active的favor
	affected, err := repo.BulkUpdateStatus(user.ID, model.FavorStatusActive, model.FavorStatusSuspended, f2.ID)
	if err != nil {
		t.Fatalf("BulkUpdateStatus() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 favor suspended, got %v", affected)
	}

	found1, _ := repo.FindByID(f1.ID)
	if found1.Status != model.FavorStatusSuspended {
		t.Errorf("Expected f1 suspended, got %v", found1.Status)
	}
	found2, _ := repo.FindByID(f2.ID)
	if found2.Status != model.FavorStatusActive {
		t.Errorf("Expected f2 to stay active, got %v", found2.Status)
	}
	found3, _ := repo.FindByID(f3.ID)
	if found3.Status != model.FavorStatusAccepted {
		t.Errorf("Expected f3 to stay accepted, got %v", found3.Status)
	}

	// excludeID为0时全部重新激活
	affected, err = repo.BulkUpdateStatus(user.ID, model.FavorStatusSuspended, model.FavorStatusActive, 0)
	if err != nil {
		t.Fatalf("BulkUpdateStatus() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 favor reactivated, got %v", affected)
	}
}

func TestFavorRepository_Listings(t *testing.T) {
	conn := setupTestDB(t)
	userRepo := NewUserRepository(conn)
	repo := NewFavorRepository(conn)

	alice := &model.User{Email: "alice@example.com", Credits: 3}
	bob := &model.User{Email: "bob@example.com", Credits: 3}
	for _, u := range []*model.User{alice, bob} {
		if err := userRepo.Create(u); err != nil {
			t.Fatalf("Failed to create test user: %v", err)
		}
	}

	base := time.Now().Add(-time.Hour)
	older := createTestFavor(t, repo, alice.ID, model.FavorStatusActive, base)
	newer := createTestFavor(t, repo, bob.ID, model.FavorStatusActive, base.Add(time.Minute))

	// 按创建时间倒序
	all, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 favors, got %v", len(all))
	}
	if all[0].ID != newer.ID || all[1].ID != older.ID {
		t.Error("Expected favors sorted by creation time descending")
	}

	mine, err := repo.FindByUser(alice.ID)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(mine) != 1 || mine[0].ID != older.ID {
		t.Error("Expected only alice's favor")
	}

	// "公开"列表排除请求者自己的favor
	public, err := repo.FindExcludingUser(alice.ID)
	if err != nil {
		t.Fatalf("FindExcludingUser() error = %v", err)
	}
	if len(public) != 1 || public[0].ID != newer.ID {
		t.Error("Expected only bob's favor in alice's public list")
	}
}
