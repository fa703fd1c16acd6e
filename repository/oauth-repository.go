package repository

import (
	"time"

	"gorm.io/gorm"
)

type Provider string

const ProviderGoogle Provider = "google"

type Oauth struct {
	UserId       string    `gorm:"primaryKey;type:uuid"`
	Provider     Provider  `gorm:"primaryKey"`
	AccountId    string    `gorm:"not null;index"`
	Name         string    `gorm:""`
	Email        string    `gorm:""`
	AccessToken  string    `gorm:""`
	RefreshToken string    `gorm:""`
	Expiry       time.Time `gorm:""`
	User         *User     `gorm:"foreignKey:UserId"`
}

type OauthRepository struct {
	DB *gorm.DB
}

func NewOauthRepository(db *gorm.DB) *OauthRepository {
	return &OauthRepository{DB: db}
}

func (r *OauthRepository) GetOauthByProviderAndAccountId(provider Provider, accountId string) (*Oauth, error) {
	var oauth Oauth
	result := r.DB.Preload("User").First(&oauth, "provider = ? AND account_id = ?", provider, accountId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &oauth, nil
}

func (r *OauthRepository) SaveOauth(oauth *Oauth) (*Oauth, error) {
	result := r.DB.Save(oauth)
	if result.Error != nil {
		return nil, result.Error
	}
	return oauth, nil
}
