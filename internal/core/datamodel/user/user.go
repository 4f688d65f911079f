package user

import "time"

type User struct {
	ID           string     `gorm:"primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         string     `gorm:"column:role;not null"`
	Division     string     `gorm:"column:division"`
	Section      string     `gorm:"column:section"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
	LastLogin    *time.Time `gorm:"column:last_login"`
}

func (User) TableName() string {
	return "users"
}
