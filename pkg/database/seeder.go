package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/machzaul/Tubes-Pemweb/config"
	"github.com/machzaul/Tubes-Pemweb/internal/models"
	"github.com/machzaul/Tubes-Pemweb/internal/utils"
)

// SeedAdmin creates the default admin account from configuration if no admin
// with that username exists yet.
func SeedAdmin() {
	username := config.AppConfig.Defaults.AdminUsername
	password := config.AppConfig.Defaults.AdminPassword
	if username == "" || password == "" {
		log.Println("Skipping admin seed: ADMIN_USERNAME/ADMIN_PASSWORD not configured")
		return
	}

	var admin models.Admin
	err := DB.Where("username = ?", username).First(&admin).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check for existing admin: %v", err)
		return
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin = models.Admin{
		Username:     username,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Admin user seeded successfully.")
}

// SeedCatalog inserts a couple of sample products for a fresh install.
func SeedCatalog() {
	samples := []models.Product{
		{
			Title:       "Smart Watch",
			Description: "Track your fitness and receive notifications on the go",
			Price:       199.99,
			Stock:       10,
			Image:       "https://fakestoreapi.com/img/71li-ujtlUL._AC_UX679_.jpg",
		},
		{
			Title:       "Wireless Headphones",
			Description: "Over-ear headphones with active noise cancellation",
			Price:       149.50,
			Stock:       25,
			Image:       "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
		},
	}

	for _, p := range samples {
		var existing models.Product
		if err := DB.Where("title = ?", p.Title).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := DB.Create(&p).Error; err != nil {
				log.Printf("Failed to seed product %q: %v", p.Title, err)
			}
		}
	}
	log.Println("Catalog seeding completed.")
}
