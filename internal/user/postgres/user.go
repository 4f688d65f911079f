package postgres

import (
	"gorm.io/gorm"

	userDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/user"
	"github.com/railtrace/railway-assets/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(filter user.ListFilter) ([]*userDatamodel.User, error) {
	query := r.db.Order("created_at DESC")
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Division != "" {
		query = query.Where("division = ?", filter.Division)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var records []*userDatamodel.User
	err := query.Find(&records).Error
	return records, err
}

func (r *UserRepository) GetByID(id string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *UserRepository) Create(record *userDatamodel.User) error {
	return r.db.Create(record).Error
}

func (r *UserRepository) Update(record *userDatamodel.User) error {
	return r.db.Save(record).Error
}

func (r *UserRepository) Deactivate(id string) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).Update("is_active", false).Error
}
