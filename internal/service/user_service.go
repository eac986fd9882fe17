package service

import (
	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/repository"
	"go-favor-exchange/pkg/config"
)

// UserService 处理用户实体的读取与首次创建。
// 身份由外部认证层提供，这里只信任其email。
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// 新用户初始积分
func initialCredits() int {
	if c := config.GlobalConfig.Ledger.InitialCredits; c > 0 {
		return c
	}
	return 1
}

// 首次认证时创建用户，初始积分为1
func (s *UserService) Create(req CreateUserRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Email:   req.Email,
		Credits: initialCredits(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// 通过ID获取用户
func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// 通过邮箱获取用户
func (s *UserService) GetByEmail(email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
