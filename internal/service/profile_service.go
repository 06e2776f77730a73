package service

import (
	"strings"

	"github.com/sabai-next/internal/constants"
	"github.com/sabai-next/internal/models"
	"github.com/sabai-next/internal/repository"
)

// ProfileInput 收货资料写入请求
type ProfileInput struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// ProfileService 收货资料服务
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService 创建资料服务
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get 查询收货资料，不存在时返回默认结构（国家为 Thailand）
func (s *ProfileService) Get(userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &models.Profile{
			UserID:  userID,
			Country: constants.DefaultCountry,
		}, nil
	}
	return profile, nil
}

// Upsert 整体覆盖写入收货资料
func (s *ProfileService) Upsert(userID uint, input ProfileInput) (*models.Profile, error) {
	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = constants.DefaultCountry
	}
	profile := &models.Profile{
		UserID:     userID,
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		City:       strings.TrimSpace(input.City),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    country,
	}
	if err := s.profiles.Upsert(profile); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// IsComplete 判断资料是否满足下单要求
func (s *ProfileService) IsComplete(profile *models.Profile) bool {
	if profile == nil {
		return false
	}
	return strings.TrimSpace(profile.Address) != "" &&
		strings.TrimSpace(profile.City) != "" &&
		strings.TrimSpace(profile.PostalCode) != "" &&
		strings.TrimSpace(profile.Country) != ""
}
