package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenstamp/greenstamp/internal/config"
	"github.com/greenstamp/greenstamp/internal/infra/database"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

// Seeds the database with a small demo dataset. Existing rows are wiped
// first, so never point this at a production database.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seed(db); err != nil {
		slog.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("database seeded", slog.String("module", "seed"))
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.UserBadge{},
			&models.NGOMember{},
			&models.Proof{},
			&models.User{},
			&models.NGO{},
			&models.Category{},
			&models.Badge{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		ngos := []models.NGO{
			{
				ID:           uuid.New().String(),
				Name:         "Eco Warriors",
				Description:  "Dedicated to protecting the environment through community action",
				Email:        "contact@ecowarriors.org",
				Website:      "https://ecowarriors.org",
				Phone:        "+1-555-0123",
				Address:      "123 Green Street, Eco City, EC 12345",
				TotalProofs:  15,
				TotalMembers: 45,
				TotalImpact:  150,
				IsVerified:   true,
			},
			{
				ID:           uuid.New().String(),
				Name:         "Tree Planters United",
				Description:  "Planting trees for a greener future",
				Email:        "info@treeplanters.org",
				Website:      "https://treeplanters.org",
				Phone:        "+1-555-0456",
				Address:      "456 Forest Avenue, Green Town, GT 67890",
				TotalProofs:  28,
				TotalMembers: 67,
				TotalImpact:  280,
				IsVerified:   true,
			},
			{
				ID:           uuid.New().String(),
				Name:         "Ocean Cleanup Crew",
				Description:  "Cleaning our oceans one beach at a time",
				Email:        "hello@oceancleanup.org",
				Website:      "https://oceancleanup.org",
				Phone:        "+1-555-0789",
				Address:      "789 Beach Road, Coastal City, CC 11111",
				TotalProofs:  42,
				TotalMembers: 89,
				TotalImpact:  420,
				IsVerified:   true,
			},
		}
		if err := tx.Create(&ngos).Error; err != nil {
			return err
		}

		users := []models.User{
			{
				ID:            uuid.New().String(),
				Email:         "john@example.com",
				Name:          "John Smith",
				WalletAddress: "0x1234567890abcdef",
				Bio:           "Environmental activist and tree lover",
				TotalProofs:   8,
				TotalImpact:   80,
			},
			{
				ID:            uuid.New().String(),
				Email:         "sarah@example.com",
				Name:          "Sarah Johnson",
				WalletAddress: "0xabcdef1234567890",
				Bio:           "Marine biologist passionate about ocean conservation",
				TotalProofs:   12,
				TotalImpact:   120,
			},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		now := time.Now()
		members := []models.NGOMember{
			{ID: uuid.New().String(), UserID: users[0].ID, NGOID: ngos[0].ID, Role: "admin", JoinedAt: now},
			{ID: uuid.New().String(), UserID: users[1].ID, NGOID: ngos[1].ID, Role: "member", JoinedAt: now},
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		categories := []models.Category{
			{
				ID:          uuid.New().String(),
				Name:        "tree_planting",
				Description: "Planting trees and reforestation activities",
				Icon:        "🌳",
				Color:       "#22c55e",
				TotalProofs: 25,
			},
			{
				ID:          uuid.New().String(),
				Name:        "beach_cleanup",
				Description: "Cleaning beaches and coastal areas",
				Icon:        "🏖️",
				Color:       "#3b82f6",
				TotalProofs: 18,
			},
			{
				ID:          uuid.New().String(),
				Name:        "recycling",
				Description: "Recycling and waste management activities",
				Icon:        "♻️",
				Color:       "#f59e0b",
				TotalProofs: 12,
			},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		badges := []models.Badge{
			{
				ID:          uuid.New().String(),
				Name:        "Early Adopter",
				Description: "Joined during the first season",
				Icon:        "🌱",
				Color:       "#22c55e",
			},
			{
				ID:          uuid.New().String(),
				Name:        "Ocean Guardian",
				Description: "Completed ten beach cleanups",
				Icon:        "🌊",
				Color:       "#3b82f6",
			},
			{
				ID:          uuid.New().String(),
				Name:        "Tree Hugger",
				Description: "Planted one hundred trees",
				Icon:        "🌳",
				Color:       "#16a34a",
			},
		}
		return tx.Create(&badges).Error
	})
}
