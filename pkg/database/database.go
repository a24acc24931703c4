package database

import (
	"fmt"
	"log"

	"kvizmajstor_backend/internal/config"
	"kvizmajstor_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedCategories(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizResult{},
	)
}

// SeedCategories inserts the default category set once, on an empty table.
// Safe to call on every startup.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []model.Category{
		{UUIDBase: model.UUIDBase{ID: "1"}, Name: "Istorija", Icon: "📜", Color: "#FFE66D"},
		{UUIDBase: model.UUIDBase{ID: "2"}, Name: "Srpski Jezik", Icon: "📖", Color: "#C7CEEA"},
		{UUIDBase: model.UUIDBase{ID: "3"}, Name: "Geografija", Icon: "🌍", Color: "#95E1D3"},
		{UUIDBase: model.UUIDBase{ID: "4"}, Name: "Matematika", Icon: "🔢", Color: "#FF6B6B"},
		{UUIDBase: model.UUIDBase{ID: "5"}, Name: "Biologija", Icon: "🧬", Color: "#A8E6CF"},
		{UUIDBase: model.UUIDBase{ID: "6"}, Name: "Informatika", Icon: "💻", Color: "#FFDAB9"},
		{UUIDBase: model.UUIDBase{ID: "7"}, Name: "Fizika", Icon: "⚛️", Color: "#B4A7D6"},
		{UUIDBase: model.UUIDBase{ID: "8"}, Name: "Hemija", Icon: "🔬", Color: "#4ECDC4"},
	}

	for _, c := range defaults {
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}

	log.Println("Default categories seeded")
	return nil
}
