package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/soufdev/fraudline/config"
	"github.com/soufdev/fraudline/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=Africa/Casablanca",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: uuid.New(), Name: models.RoleAdmin},
		{ID: uuid.New(), Name: models.RoleUser},
	}

	for _, role := range roles {
		if err := db.FirstOrCreate(&role, models.Role{Name: role.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedRegions loads the static risk map. The baseline problem counts are the
// historical figures shown before any live reports are linked to a region.
func SeedRegions(db *gorm.DB) error {
	regions := []models.Region{
		{
			ID:          uuid.New(),
			Name:        "Casablanca",
			X:           65,
			Y:           120,
			Risk:        "high",
			Problems:    15,
			Phones:      strings.Join([]string{"0666666666", "0677777777"}, ","),
			Description: "Highest fraud rate, driven by population density",
		},
		{
			ID:          uuid.New(),
			Name:        "Rabat",
			X:           80,
			Y:           90,
			Risk:        "medium",
			Problems:    8,
			Phones:      "0688888888",
			Description: "Moderate rate with scattered incidents",
		},
		{
			ID:          uuid.New(),
			Name:        "Marrakech",
			X:           75,
			Y:           180,
			Risk:        "high",
			Problems:    12,
			Phones:      strings.Join([]string{"0699999999", "0600000000"}, ","),
			Description: "Tourist density pushes incident counts up",
		},
		{
			ID:          uuid.New(),
			Name:        "Fes",
			X:           120,
			Y:           110,
			Risk:        "medium",
			Problems:    6,
			Phones:      "0611111111",
			Description: "Medium risk area",
		},
		{
			ID:          uuid.New(),
			Name:        "Tangier",
			X:           30,
			Y:           60,
			Risk:        "medium",
			Problems:    9,
			Phones:      "0622222222",
			Description: "Border city, moderate incidents",
		},
		{
			ID:          uuid.New(),
			Name:        "Agadir",
			X:           50,
			Y:           220,
			Risk:        "low",
			Problems:    4,
			Phones:      "0633333333",
			Description: "Quiet area, low rate",
		},
		{
			ID:          uuid.New(),
			Name:        "Meknes",
			X:           100,
			Y:           100,
			Risk:        "low",
			Problems:    3,
			Phones:      "0644444444",
			Description: "Low fraud rate",
		},
		{
			ID:          uuid.New(),
			Name:        "Oujda",
			X:           160,
			Y:           80,
			Risk:        "medium",
			Problems:    7,
			Phones:      "0655555555",
			Description: "Border area, medium risk",
		},
	}

	for _, region := range regions {
		var existing models.Region
		result := db.Where("name = ?", region.Name).First(&existing)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				if err := db.Create(&region).Error; err != nil {
					log.Printf("Failed to create region %s: %v", region.Name, err)
					return err
				}
			} else {
				return result.Error
			}
		}
	}

	return nil
}

// SeedKnownNumbers registers the seed-region numbers so a lookup on one of
// them can report a clean record before anyone files a complaint.
func SeedKnownNumbers(db *gorm.DB) error {
	var regions []models.Region
	if err := db.Find(&regions).Error; err != nil {
		return err
	}

	for _, region := range regions {
		for _, phone := range strings.Split(region.Phones, ",") {
			phone = strings.TrimSpace(phone)
			if phone == "" {
				continue
			}
			known := models.KnownNumber{PhoneNumber: phone}
			if err := db.FirstOrCreate(&known, models.KnownNumber{PhoneNumber: phone}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.Role{},
		&models.Report{},
		&models.KnownNumber{},
		&models.NumberRating{},
		&models.Region{},
	)

	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRoles(db); err != nil {
		return fmt.Errorf("seeding roles error: %v", err)
	}

	if err := SeedRegions(db); err != nil {
		return fmt.Errorf("seeding regions error: %v", err)
	}

	if err := SeedKnownNumbers(db); err != nil {
		return fmt.Errorf("seeding known numbers error: %v", err)
	}

	return nil
}
