package service

import "errors"

// 业务错误分类，handler层通过errors.Is映射到HTTP状态码
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrFavorNotFound        = errors.New("favor not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrMemberNotFound       = errors.New("member not found in group")

	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNegativeCredits     = errors.New("credit balance cannot be negative")

	ErrSelfAccept       = errors.New("cannot accept your own favor")
	ErrFavorNotActive   = errors.New("favor is not active")
	ErrFavorNotAccepted = errors.New("favor is not accepted")

	ErrAlreadyMember       = errors.New("user is already a member of this group")
	ErrCannotRemoveFounder = errors.New("cannot remove the group founder")
	ErrInvalidStatusChange = errors.New("invalid notification status change")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)
