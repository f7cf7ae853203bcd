package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripveda/internal/agents"
	"tripveda/internal/coupons"
	"tripveda/internal/pages"
	"tripveda/internal/pricing"
	"tripveda/internal/shared/config"
	"tripveda/internal/shared/database"
	"tripveda/internal/shared/utils/slug"
	"tripveda/internal/tours"
	"tripveda/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Tripveda Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"coupons",
		"agents",
		"pages",
		"global_prices",
		"tours",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedGlobalPrice(); err != nil {
		return fmt.Errorf("failed to seed global price: %w", err)
	}

	if err := s.SeedTours(); err != nil {
		return fmt.Errorf("failed to seed tours: %w", err)
	}

	agentIDs, err := s.SeedAgents()
	if err != nil {
		return fmt.Errorf("failed to seed agents: %w", err)
	}

	if err := s.SeedCoupons(agentIDs); err != nil {
		return fmt.Errorf("failed to seed coupons: %w", err)
	}

	if err := s.SeedPages(); err != nil {
		return fmt.Errorf("failed to seed pages: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates an admin and a staff account (password "qwerty").
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"Admin", "User", "admin@tripveda.in", users.RoleAdmin},
		{"Front", "Desk", "frontdesk@tripveda.in", users.RoleStaff},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:           uuid.New(),
			FirstName:    userData.firstName,
			LastName:     userData.lastName,
			Email:        userData.email,
			PasswordHash: string(hashedPassword),
			Role:         userData.role,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedGlobalPrice installs the default rate card.
func (s *Seeder) SeedGlobalPrice() error {
	fmt.Println("  💰 Seeding global price...")

	gp := tours.GlobalPrice{
		ID: 1,
		Rates: pricing.RateOverrides{
			MealPerPersonPerDay: i64(450),
			TeaPerPersonPerDay:  i64(100),
			BonfireFlat:         i64(1500),
			TourGuideFlat:       i64(2500),
			ComfortSeatFlat:     i64(800),
			RoomStandard:        i64(1800),
			RoomPanoramic:       i64(3200),
			PersonalCabFlat:     i64(6000),
			TourManagerFlat:     i64(3000),
		},
		UpdatedAt: time.Now(),
	}

	if err := s.db.PostgreSQL.Create(&gp).Error; err != nil {
		return fmt.Errorf("failed to create global price: %w", err)
	}

	fmt.Println("    ✅ Created global rate card")
	return nil
}

// SeedTours creates a handful of sample tours.
func (s *Seeder) SeedTours() error {
	fmt.Println("  🏔️  Seeding tours...")

	toursData := []tours.Tour{
		{
			Title:       "Manali Winter Escape",
			Description: "Four nights in the Kullu valley with snow point visits and local sightseeing.",
			Location:    "Manali, Himachal Pradesh",
			Nights:      4,
			BasePrice:   7999,
			Featured:    true,
			Active:      true,
		},
		{
			Title:       "Goa Beach Week",
			Description: "Beaches of North Goa, a day in Old Goa and a sunset cruise on the Mandovi.",
			Location:    "Goa",
			Nights:      6,
			BasePrice:   11499,
			Featured:    true,
			Active:      true,
			Rates: pricing.RateOverrides{
				RoomStandard:  i64(2200),
				RoomPanoramic: i64(4000),
			},
		},
		{
			Title:       "Rishikesh Rafting Weekend",
			Description: "Two nights of camping by the Ganga with a 16 km rafting stretch.",
			Location:    "Rishikesh, Uttarakhand",
			Nights:      2,
			BasePrice:   4499,
			Active:      true,
			Rates: pricing.RateOverrides{
				BonfireFlat: i64(1000),
			},
		},
		{
			Title:       "Kerala Backwaters Retired",
			Description: "Retired itinerary kept for booking history.",
			Location:    "Alleppey, Kerala",
			Nights:      5,
			BasePrice:   13999,
			Active:      false,
		},
	}

	for i := range toursData {
		toursData[i].ID = uuid.New()
		toursData[i].Slug = slug.Make(toursData[i].Title)
		toursData[i].CreatedAt = time.Now()
		toursData[i].UpdatedAt = time.Now()

		if err := s.db.PostgreSQL.Create(&toursData[i]).Error; err != nil {
			return fmt.Errorf("failed to create tour %s: %w", toursData[i].Title, err)
		}
		fmt.Printf("    ✅ Created tour: %s (%s)\n", toursData[i].Title, toursData[i].Slug)
	}

	return nil
}

// SeedAgents creates referral agents.
func (s *Seeder) SeedAgents() (map[string]uuid.UUID, error) {
	fmt.Println("  🤝 Seeding agents...")

	agentIDs := make(map[string]uuid.UUID)

	agentsData := []agents.Agent{
		{Name: "Sunrise Travels", Email: "bookings@sunrisetravels.in", Phone: "+91 98200 11001", CommissionRate: 8, Active: true},
		{Name: "Hilltop Holidays", Email: "contact@hilltopholidays.in", Phone: "+91 98200 11002", CommissionRate: 5.5, Active: true},
	}

	for i := range agentsData {
		agentsData[i].ID = uuid.New()
		agentsData[i].CreatedAt = time.Now()
		agentsData[i].UpdatedAt = time.Now()

		if err := s.db.PostgreSQL.Create(&agentsData[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create agent %s: %w", agentsData[i].Name, err)
		}

		agentIDs[agentsData[i].Name] = agentsData[i].ID
		fmt.Printf("    ✅ Created agent: %s (%.1f%%)\n", agentsData[i].Name, agentsData[i].CommissionRate)
	}

	return agentIDs, nil
}

// SeedCoupons creates sample coupons, one tied to an agent.
func (s *Seeder) SeedCoupons(agentIDs map[string]uuid.UUID) error {
	fmt.Println("  🎟️  Seeding coupons...")

	sunriseID := agentIDs["Sunrise Travels"]

	couponsData := []coupons.Coupon{
		{
			Code:          "MONSOON10",
			DiscountType:  pricing.DiscountPercentage,
			DiscountValue: 10,
			ExpiresAt:     time.Now().AddDate(0, 3, 0),
			UsageLimit:    100,
			Active:        true,
		},
		{
			Code:          "FLAT500",
			DiscountType:  pricing.DiscountFlat,
			DiscountValue: 500,
			ExpiresAt:     time.Now().AddDate(0, 1, 0),
			UsageLimit:    50,
			Active:        true,
		},
		{
			Code:          "SUNRISE15",
			DiscountType:  pricing.DiscountPercentage,
			DiscountValue: 15,
			ExpiresAt:     time.Now().AddDate(1, 0, 0),
			UsageLimit:    0, // unlimited
			AgentID:       &sunriseID,
			Active:        true,
		},
	}

	for i := range couponsData {
		couponsData[i].ID = uuid.New()
		couponsData[i].CreatedAt = time.Now()
		couponsData[i].UpdatedAt = time.Now()

		if err := s.db.PostgreSQL.Create(&couponsData[i]).Error; err != nil {
			return fmt.Errorf("failed to create coupon %s: %w", couponsData[i].Code, err)
		}
		fmt.Printf("    ✅ Created coupon: %s\n", couponsData[i].Code)
	}

	return nil
}

// SeedPages creates the static pages and a sample post.
func (s *Seeder) SeedPages() error {
	fmt.Println("  📄 Seeding pages...")

	now := time.Now()
	pagesData := []pages.Page{
		{
			Kind:        pages.KindPage,
			Title:       "About Us",
			Excerpt:     "Who we are and how we plan your trips.",
			Content:     "Tripveda has been organising small group tours across India since 2016.",
			Published:   true,
			PublishedAt: &now,
		},
		{
			Kind:        pages.KindPage,
			Title:       "Cancellation Policy",
			Excerpt:     "Refund slabs by days before departure.",
			Content:     "Full refund up to 15 days before departure, 50% up to 7 days, none after.",
			Published:   true,
			PublishedAt: &now,
		},
		{
			Kind:        pages.KindPost,
			Title:       "Five Things to Pack for Manali",
			Excerpt:     "A short packing list for winter departures.",
			Content:     "Layers beat bulk. Start with a thermal base...",
			Published:   true,
			PublishedAt: &now,
		},
	}

	for i := range pagesData {
		pagesData[i].ID = uuid.New()
		pagesData[i].Slug = slug.Make(pagesData[i].Title)
		pagesData[i].CreatedAt = now
		pagesData[i].UpdatedAt = now

		if err := s.db.PostgreSQL.Create(&pagesData[i]).Error; err != nil {
			return fmt.Errorf("failed to create page %s: %w", pagesData[i].Title, err)
		}
		fmt.Printf("    ✅ Created %s: %s\n", pagesData[i].Kind, pagesData[i].Title)
	}

	return nil
}

func i64(v int64) *int64 { return &v }
