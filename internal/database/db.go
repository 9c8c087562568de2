package database

import (
	"log"

	"assetflow/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.Department{},
		&model.Asset{},
		&model.AssetTransfer{},
		&model.AssetDisposal{},
		&model.MaintenanceSchedule{},
		&model.InventoryCheck{},
		&model.InventoryDetail{},
		&model.BudgetPlan{},
		&model.AccountingEntry{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
