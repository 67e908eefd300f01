package database

import (
	"fmt"
	"log"

	"quiz_portal_backend/internal/config"
	"quiz_portal_backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates the schema and seeds the fixed role set. Shared with the
// test suite, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.AppUser{},
		&model.Role{},
		&model.UserRole{},
		&model.Organization{},
		&model.OrgMembership{},
		&model.OrgMembershipRequest{},
		&model.Domain{},
		&model.Question{},
		&model.Choice{},
		&model.QuizSession{},
		&model.QuizSessionQuestion{},
		&model.QuizAnswer{},
		&model.QuizSessionDomainScore{},
	)
	if err != nil {
		return err
	}

	var count int64
	db.Model(&model.Role{}).Count(&count)
	if count == 0 {
		defaultRoles := []model.Role{
			{Code: model.RoleSystemAdmin, Name: "System Administrator", Rank: 100, IsActive: true},
			{Code: model.RoleDirector, Name: "Director", Rank: 50, IsActive: true},
			{Code: model.RoleAssessor, Name: "Assessor", Rank: 40, IsActive: true},
			{Code: model.RoleUser, Name: "User", Rank: 10, IsActive: true},
		}
		for _, r := range defaultRoles {
			if err := db.Create(&r).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
