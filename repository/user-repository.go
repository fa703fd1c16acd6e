package repository

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	Id            string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	DisplayName   string         `gorm:"not null"`
	Email         string         `gorm:""`
	Permissions   pq.StringArray `gorm:"type:text[]"`
	CreatedAt     time.Time      `gorm:""`
	OauthAccounts []*Oauth       `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId string, preloads ...string) (*User, error) {
	var user User
	q := r.DB
	for _, preload := range preloads {
		q = q.Preload(preload)
	}
	result := q.First(&user, "id = ?", userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}
