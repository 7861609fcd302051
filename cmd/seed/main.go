package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"studioportal/internal/database"
	"studioportal/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "studioportal.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		FirstName:    "Studio",
		LastName:     "Admin",
		Email:        "admin@studioportal.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role"}),
	}).Create(&admin)
	log.Println("Admin: admin@studioportal.local / admin123")

	clientNames := [][2]string{{"Anna", "Korobova"}, {"Mark", "Seitkali"}, {"Lena", "Petrova"}}
	for i, name := range clientNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		c := domain.User{
			FirstName:    name[0],
			LastName:     name[1],
			Email:        fmt.Sprintf("client%d@test.local", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+10),
			ServiceType:  "wedding",
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
		}).Create(&c)
	}
	log.Println("Clients: client1@test.local ... client3@test.local / client123")

	// ================== PUBLIC CONTENT ==================
	log.Println("Creating public content...")

	db.Exec("DELETE FROM company_info")
	db.Create(&domain.CompanyInfo{
		Name:    "Studio Portal",
		Tagline: "Photography that keeps the moment",
		About:   "Full-service photo studio for weddings, portraits and commercial shoots.",
		Email:   "hello@studioportal.local",
		Phone:   "+7 727 000 00 00",
		Address: "Almaty, Dostyk ave 1",
	})

	db.Exec("DELETE FROM projects")
	for i := 1; i <= 4; i++ {
		db.Create(&domain.Project{
			Title:       fmt.Sprintf("Portfolio shoot %d", i),
			ServiceType: []string{"wedding", "portrait", "commercial", "family"}[i-1],
			Description: "Selected work from our portfolio.",
			Featured:    i <= 2,
		})
	}

	db.Exec("DELETE FROM testimonials")
	db.Create(&domain.Testimonial{AuthorName: "Aizhan T.", Quote: "The gallery turnaround was incredibly fast.", Rating: 5})
	db.Create(&domain.Testimonial{AuthorName: "Dmitry K.", Quote: "Great communication through the whole shoot.", Rating: 5})

	db.Exec("DELETE FROM faqs")
	db.Create(&domain.FAQ{Question: "How long until I get my photos?", Answer: "Your private gallery goes live within 10 business days.", SortOrder: 1})
	db.Create(&domain.FAQ{Question: "Can I download originals?", Answer: "Yes, every image in your gallery can be downloaded in full resolution.", SortOrder: 2})

	db.Exec("DELETE FROM service_policies")
	db.Create(&domain.ServicePolicy{ServiceType: "wedding", Title: "Wedding package", Body: "Full day coverage, two photographers, online gallery."})
	db.Create(&domain.ServicePolicy{ServiceType: "portrait", Title: "Portrait session", Body: "One hour studio session, 20 retouched images."})

	log.Println("Seed completed")
}
