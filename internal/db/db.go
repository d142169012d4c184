package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/config"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

func NewDB(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.TreatmentType{},
		&models.ClinicDaySchedule{},
		&models.ClosureException{},
		&models.Appointment{},
		&models.TreatmentRecord{},
		&models.Tooth{},
		&models.TreatmentFile{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedTeeth(db, log)

	return db
}

// seedTeeth popula a tabela de referência de dentes na notação FDI:
// quadrantes 1..4, posições 1..8.
func seedTeeth(db *gorm.DB, log *logrus.Logger) {
	var count int64
	if err := db.Model(&models.Tooth{}).Count(&count).Error; err != nil {
		log.Warnf("failed to count teeth: %v", err)
		return
	}
	if count > 0 {
		return
	}

	names := []string{
		"central incisor", "lateral incisor", "canine", "first premolar",
		"second premolar", "first molar", "second molar", "third molar",
	}

	var teeth []models.Tooth
	for quadrant := 1; quadrant <= 4; quadrant++ {
		for pos := 1; pos <= 8; pos++ {
			teeth = append(teeth, models.Tooth{
				Number: quadrant*10 + pos,
				Name:   names[pos-1],
			})
		}
	}

	if err := db.Create(&teeth).Error; err != nil {
		log.Warnf("failed to seed teeth: %v", err)
	}
}
