package user

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/railtrace/railway-assets/internal"
	userDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/user"
	"github.com/railtrace/railway-assets/internal/rbac"
)

type RepositoryAPI interface {
	List(filter ListFilter) ([]*userDatamodel.User, error)
	GetByID(id string) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
	Update(user *userDatamodel.User) error
	Deactivate(id string) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) List(filter ListFilter) ([]UserResponse, error) {
	records, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	responses := make([]UserResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, FromDataModel(record).ToResponse())
	}
	return responses, nil
}

func (s *Service) GetByID(id string) (*UserResponse, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get user", err)
	}

	response := FromDataModel(record).ToResponse()
	return &response, nil
}

func (s *Service) Create(dto CreateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check existing email", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	now := time.Now()
	record := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		Role:         dto.Role,
		Division:     dto.Division,
		Section:      dto.Section,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", record.ID, "role", record.Role)
	response := FromDataModel(record).ToResponse()
	return &response, nil
}

func (s *Service) Update(id string, dto UpdateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to load user for update", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	if dto.Name != nil {
		record.Name = *dto.Name
	}
	if dto.Role != nil {
		record.Role = *dto.Role
	}
	if dto.Division != nil {
		record.Division = *dto.Division
	}
	if dto.Section != nil {
		record.Section = *dto.Section
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	response := FromDataModel(record).ToResponse()
	return &response, nil
}

func (s *Service) Deactivate(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrUserNotFound
		}
		s.logger.Error("failed to load user for deactivation", "user_id", id, "error", err)
		return internal.NewInternalError("failed to deactivate user", err)
	}

	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate user", "user_id", id, "error", err)
		return internal.NewInternalError("failed to deactivate user", err)
	}

	s.logger.Info("user deactivated", "user_id", id)
	return nil
}

// TouchLastLogin records a successful login against the directory entry.
// Missing entries are fine; demo sessions have no directory row.
func (s *Service) TouchLastLogin(email string) {
	record, err := s.repo.GetByEmail(email)
	if err != nil {
		return
	}
	now := time.Now()
	record.LastLogin = &now
	record.UpdatedAt = now
	if err := s.repo.Update(record); err != nil {
		s.logger.Warn("failed to record last login", "email", email, "error", err)
	}
}

// VerifyPassword checks directory credentials. Used by the seeded demo
// deployment where the directory doubles as the credential source.
func (s *Service) VerifyPassword(email, password string) (*UserResponse, error) {
	record, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, internal.NewInternalError("failed to verify credentials", err)
	}
	if !record.IsActive {
		return nil, internal.ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	if !rbac.Role(record.Role).Valid() {
		return nil, internal.ErrInvalidCredentials
	}

	response := FromDataModel(record).ToResponse()
	return &response, nil
}
