package services

import (
	"context"
	"fmt"
	"log"

	"go-react-tasks/backend/internal/models"
	"go-react-tasks/backend/internal/repositories"
)

// UserService はユーザー関連のビジネスロジックを扱います。
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SignupUser はユーザーを登録します。
func (s *UserService) SignupUser(ctx context.Context, req models.UserSignupRequest) (*models.User, error) {
	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}

	createdUser, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, err
	}
	createdUser.Password = "" // レスポンスにハッシュを残さない
	return createdUser, nil
}

// AuthenticateUser はユーザーを認証し、成功したらユーザーを返します。
// メール不存在とパスワード不一致は区別できないエラーを返します。
func (s *UserService) AuthenticateUser(ctx context.Context, req models.UserLoginRequest) (*models.User, error) {
	foundUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := repositories.VerifyPassword(foundUser.Password, req.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	foundUser.Password = ""
	return foundUser, nil
}
