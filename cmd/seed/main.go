// Command seed populates a fresh household with the default category
// and tag set so the first expense can be recorded without setup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/homeledger/homeledger/internal/config"
	"github.com/homeledger/homeledger/internal/data/mongo"
	"github.com/homeledger/homeledger/internal/domain/category"
	"github.com/homeledger/homeledger/internal/domain/tag"
	"github.com/homeledger/homeledger/internal/logger"
	"github.com/homeledger/homeledger/internal/platform/persistence"
)

var defaultCategories = []struct {
	name string
	kind category.Kind
	icon string
}{
	{"Groceries", category.KindExpense, "cart"},
	{"Dining", category.KindExpense, "utensils"},
	{"Transport", category.KindExpense, "bus"},
	{"Housing", category.KindExpense, "home"},
	{"Utilities", category.KindExpense, "bolt"},
	{"Health", category.KindExpense, "heart"},
	{"Entertainment", category.KindExpense, "film"},
	{"Salary", category.KindIncome, "wallet"},
	{"Other income", category.KindIncome, "coins"},
}

var defaultTags = []string{"recurring", "shared", "vacation"}

func main() {
	ownerID := flag.String("owner", "", "owner ID to seed defaults for")
	flag.Parse()

	if *ownerID == "" {
		fmt.Println("usage: seed -owner <owner-id>")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("api")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)
	ctx := context.Background()

	mongoDB, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Close(ctx)

	categoryRepo := mongo.NewCategoryRepository(log, mongoDB.Database())
	tagRepo := mongo.NewTagRepository(log, mongoDB.Database())

	for _, dc := range defaultCategories {
		existing, err := categoryRepo.GetByName(ctx, *ownerID, dc.name)
		if err != nil {
			log.Error("Failed to check category", "name", dc.name, "error", err)
			os.Exit(1)
		}
		if existing != nil {
			log.Info("Category already exists, skipping", "name", dc.name)
			continue
		}

		c, err := category.New(*ownerID, dc.name, dc.kind, dc.icon, "")
		if err != nil {
			log.Error("Failed to build category", "name", dc.name, "error", err)
			os.Exit(1)
		}
		if err := categoryRepo.Create(ctx, c); err != nil {
			log.Error("Failed to create category", "name", dc.name, "error", err)
			os.Exit(1)
		}
		log.Info("Seeded category", "name", dc.name)
	}

	for _, name := range defaultTags {
		existing, err := tagRepo.GetByName(ctx, *ownerID, name)
		if err != nil {
			log.Error("Failed to check tag", "name", name, "error", err)
			os.Exit(1)
		}
		if existing != nil {
			log.Info("Tag already exists, skipping", "name", name)
			continue
		}

		t, err := tag.New(*ownerID, name, "")
		if err != nil {
			log.Error("Failed to build tag", "name", name, "error", err)
			os.Exit(1)
		}
		if err := tagRepo.Create(ctx, t); err != nil {
			log.Error("Failed to create tag", "name", name, "error", err)
			os.Exit(1)
		}
		log.Info("Seeded tag", "name", name)
	}

	log.Info("Seeding complete", "owner_id", *ownerID)
}
