package service

import (
	"strings"

	"github.com/sabai-next/internal/logger"
	"github.com/sabai-next/internal/models"
	"github.com/sabai-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput 注册请求
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService 账号认证服务
type AuthService struct {
	credentials repository.CredentialRepository
	profiles    repository.ProfileRepository
}

// NewAuthService 创建认证服务
func NewAuthService(credentials repository.CredentialRepository, profiles repository.ProfileRepository) *AuthService {
	return &AuthService{credentials: credentials, profiles: profiles}
}

// Register 注册账号，同时初始化空的收货资料
func (s *AuthService) Register(input RegisterInput) (*models.Credential, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if existing, err := s.credentials.GetByUsername(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameExists
	}
	if existing, err := s.credentials.GetByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cred := &models.Credential{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.credentials.WithTx(tx).Create(cred); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).Upsert(&models.Profile{
			UserID:  cred.ID,
			Country: "Thailand",
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("user_registered", "user_id", cred.ID, "username", cred.Username)
	return cred, nil
}

// Authenticate 校验用户名和密码
func (s *AuthService) Authenticate(username, password string) (*models.Credential, error) {
	cred, err := s.credentials.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return cred, nil
}

// GetByID 按ID查询账号，未找到返回 ErrNotFound
func (s *AuthService) GetByID(id uint) (*models.Credential, error) {
	cred, err := s.credentials.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrNotFound
	}
	return cred, nil
}

// UpdateEmail 更新账号邮箱，邮箱被他人占用时返回 ErrEmailExists
func (s *AuthService) UpdateEmail(id uint, email string) error {
	email = strings.TrimSpace(email)
	taken, err := s.credentials.EmailTakenByOther(id, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailExists
	}
	if err := s.credentials.UpdateEmail(id, email); err != nil {
		return err
	}
	logger.Infow("user_email_updated", "user_id", id)
	return nil
}
