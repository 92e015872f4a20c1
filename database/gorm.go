package database

import (
	"fmt"
	"log"
	"time"

	"github.com/tutorslink/api/config"
	"github.com/tutorslink/api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage abstracts the persistence backend.
type Storage interface {
	GetDB() interface{}
	Init() error
	Ping() error
	Close() error
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL.
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)

	gormLogger := logger.Default.LogMode(logger.Info)
	if env.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs AutoMigrate for all models.
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	return s.db.AutoMigrate(
		// Identity
		&model.User{},
		&model.TutorProfile{},

		// Marketplace
		&model.Booking{},
		&model.Enrollment{},
		&model.Session{},
		&model.Review{},
		&model.Payment{},

		// Intake
		&model.TutorApplication{},

		// Support
		&model.ChatConversation{},
		&model.ChatMessage{},
		&model.SupportMessage{},

		// Content
		&model.Guide{},
		&model.GuideTranslation{},

		// Platform
		&model.Notification{},
		&model.AuditLog{},
		&model.PlatformSetting{},
	)
}

// GetDB returns the underlying *gorm.DB.
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// Ping verifies datastore connectivity, used by the health endpoint.
func (s *GORMStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the underlying connection pool.
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	log.Println("Closing database connection.")
	return sqlDB.Close()
}
