package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"reviewin_backend/internal/config"
	"reviewin_backend/internal/model"
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
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema. The join table is registered explicitly so
// enrollment rows get the composite (class_id, user_id) primary key that
// backs the no-duplicate-enrollment invariant.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Class{}, "Students", &model.ClassStudent{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&model.User{}, "EnrolledClasses", &model.ClassStudent{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.Assignment{},
		&model.Submission{},
		&model.PeerReview{},
	)
}
