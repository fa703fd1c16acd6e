package config

import (
	"fmt"
	"strings"

	model "verdiq/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var enumQueries = []string{
	`CREATE TYPE verdiq.lie AS ENUM ('tee', 'fairway', 'rough', 'sand', 'recovery', 'green', 'penalty', 'holed')`,
	`CREATE TYPE verdiq.voice_intent_kind AS ENUM ('log_shot', 'set_pin', 'set_wind', 'ask_advice', 'note')`,
}

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "verdiq.",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS verdiq`)
	if x.Error != nil {
		return nil, x.Error
	}
	x = db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`)
	if x.Error != nil {
		return nil, x.Error
	}
	for _, query := range enumQueries {
		x := db.Exec(query)
		if x.Error != nil {
			if strings.Contains(x.Error.Error(), "already exists") {
				continue
			}
			return nil, x.Error
		}
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Oauth{},
		&model.Round{},
		&model.Hole{},
		&model.Recording{},
		&model.Transcript{},
		&model.VoiceIntent{},
		&model.VoiceMemo{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
