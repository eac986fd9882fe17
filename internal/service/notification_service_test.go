package service

import (
	"errors"
	"testing"

	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/repository"

	"gorm.io/gorm"
)

func newTestNotificationService(conn *gorm.DB) (*NotificationService, *repository.UserRepository) {
	userRepo := repository.NewUserRepository(conn)
	notificationRepo := repository.NewNotificationRepository(conn)
	return NewNotificationService(notificationRepo, userRepo), userRepo
}

func TestNotificationService_Notify(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo := newTestNotificationService(conn)

	user := createTestUser(t, userRepo, "notify-svc@example.com", 1)

	req := CreateNotificationRequest{
		Type:    "favor_accepted",
		Title:   "Favor Accepted",
		Message: "Your favor has been accepted!",
	}
	notification, err := svc.Notify(user.ID, req)
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if notification.Status != model.NotificationStatusUnread {
		t.Errorf("Expected new notification unread, got %v", notification.Status)
	}

	list, err := svc.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 notification, got %v", len(list))
	}

	if _, err := svc.Notify(99999, req); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

// 状态只能从unread向前转移，不允许回退
func TestNotificationService_UpdateStatus(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo := newTestNotificationService(conn)

	user := createTestUser(t, userRepo, "transitions@example.com", 1)

	tests := []struct {
		name    string
		first   model.NotificationStatus
		second  model.NotificationStatus
		wantErr bool
	}{
		{"unread to read", model.NotificationStatusRead, "", false},
		{"unread to accepted", model.NotificationStatusAccepted, "", false},
		{"unread to rejected", model.NotificationStatusRejected, "", false},
		{"read to accepted rejected", model.NotificationStatusRead, model.NotificationStatusAccepted, true},
		{"accepted to rejected rejected", model.NotificationStatusAccepted, model.NotificationStatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := svc.Notify(user.ID, CreateNotificationRequest{
				Type:    "group_request",
				Title:   "join request",
				Message: "someone wants in",
			})
			if err != nil {
				t.Fatalf("Notify() error = %v", err)
			}

			updated, err := svc.UpdateStatus(n.ID, tt.first)
			if err != nil {
				t.Fatalf("UpdateStatus() error = %v", err)
			}
			if updated.Status != tt.first {
				t.Errorf("Expected status %v, got %v", tt.first, updated.Status)
			}

			if tt.second != "" {
				_, err := svc.UpdateStatus(n.ID, tt.second)
				if tt.wantErr && !errors.Is(err, ErrInvalidStatusChange) {
					t.Errorf("Expected ErrInvalidStatusChange, got %v", err)
				}
			}
		})
	}

	if _, err := svc.UpdateStatus(99999, model.NotificationStatusRead); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("Expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	conn := setupTestDB(t)
	svc, userRepo := newTestNotificationService(conn)

	user := createTestUser(t, userRepo, "markread@example.com", 1)
	n, err := svc.Notify(user.ID, CreateNotificationRequest{
		Type:    "favor_completed",
		Title:   "Favor Completed!",
		Message: "You earned 1 credit.",
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	updated, err := svc.MarkRead(n.ID)
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if updated.Status != model.NotificationStatusRead {
		t.Errorf("Expected status read, got %v", updated.Status)
	}

	// 重复标记已读不是有效转移
	if _, err := svc.MarkRead(n.ID); !errors.Is(err, ErrInvalidStatusChange) {
		t.Errorf("Expected ErrInvalidStatusChange, got %v", err)
	}
}
