package database

import (
	"fmt"
	"log"

	"github.com/fahadhasan-x/AgriZoo/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedCategory describes one node of the seed category forest.
type seedCategory struct {
	Name     string
	Slug     string
	Children []seedCategory
}

var seedCategories = []seedCategory{
	{
		Name: "Produce", Slug: "produce",
		Children: []seedCategory{
			{
				Name: "Vegetables", Slug: "vegetables",
				Children: []seedCategory{
					{
						Name: "Root Vegetables", Slug: "root-veg",
						Children: []seedCategory{
							{Name: "Carrots", Slug: "carrots"},
							{Name: "Potatoes", Slug: "potatoes"},
						},
					},
					{Name: "Leafy Greens", Slug: "leafy-greens"},
				},
			},
			{
				Name: "Fruits", Slug: "fruits",
				Children: []seedCategory{
					{Name: "Citrus", Slug: "citrus"},
					{Name: "Berries", Slug: "berries"},
				},
			},
		},
	},
	{
		Name: "Livestock", Slug: "livestock",
		Children: []seedCategory{
			{Name: "Cattle", Slug: "cattle"},
			{
				Name: "Poultry", Slug: "poultry",
				Children: []seedCategory{
					{Name: "Chickens", Slug: "chickens"},
					{Name: "Ducks", Slug: "ducks"},
				},
			},
		},
	},
	{
		Name: "Equipment", Slug: "equipment",
		Children: []seedCategory{
			{Name: "Hand Tools", Slug: "hand-tools"},
			{Name: "Machinery", Slug: "machinery"},
		},
	},
	{
		Name: "Animal Care", Slug: "animal-care",
		Children: []seedCategory{
			{Name: "Feed", Slug: "feed"},
			{Name: "Veterinary Supplies", Slug: "veterinary"},
		},
	},
}

// SeedData seeds initial data into empty tables
func SeedData(db *gorm.DB) error {
	log.Println("Checking if database needs seeding...")

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Database already has data. Skipping seed.")
		return nil
	}

	log.Println("Database is empty. Starting seed process...")

	return db.Transaction(func(tx *gorm.DB) error {
		categoryMap, err := seedCategoryForest(tx)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		userMap, err := seedUsers(tx)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		if err := seedProducts(tx, userMap, categoryMap); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		if err := seedPosts(tx, userMap); err != nil {
			return fmt.Errorf("failed to seed posts: %w", err)
		}

		log.Println("Seed completed")
		return nil
	})
}

func seedCategoryForest(tx *gorm.DB) (map[string]uint, error) {
	idBySlug := make(map[string]uint)

	var insert func(nodes []seedCategory, parentID *uint) error
	insert = func(nodes []seedCategory, parentID *uint) error {
		for _, node := range nodes {
			category := models.Category{
				Name:     node.Name,
				Slug:     node.Slug,
				ParentID: parentID,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			idBySlug[node.Slug] = category.ID
			if err := insert(node.Children, &category.ID); err != nil {
				return err
			}
		}
		return nil
	}

	if err := insert(seedCategories, nil); err != nil {
		return nil, err
	}
	log.Printf("  ✓ Seeded %d categories", len(idBySlug))
	return idBySlug, nil
}

func seedUsers(tx *gorm.DB) (map[string]uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	demo := []models.User{
		{Email: "amina@agrizoo.local", FullName: "Amina Rahman", Location: strPtr("Dhaka")},
		{Email: "jorge@agrizoo.local", FullName: "Jorge Alvarez", Location: strPtr("Valencia")},
		{Email: "mei@agrizoo.local", FullName: "Mei Lin", Location: strPtr("Chiang Mai")},
	}

	idByEmail := make(map[string]uint)
	for i := range demo {
		demo[i].Password = string(hash)
		if err := tx.Create(&demo[i]).Error; err != nil {
			return nil, err
		}
		idByEmail[demo[i].Email] = demo[i].ID
	}
	log.Printf("  ✓ Seeded %d users", len(demo))
	return idByEmail, nil
}

func seedProducts(tx *gorm.DB, users map[string]uint, categories map[string]uint) error {
	products := []models.Product{
		{UserID: users["amina@agrizoo.local"], Name: "Organic Carrot Bundle", Description: strPtr("Fresh-pulled carrots, 2kg"), Price: 4.50, CategoryID: categories["carrots"]},
		{UserID: users["amina@agrizoo.local"], Name: "Seed Potatoes", Description: strPtr("Certified seed potatoes, 5kg bag"), Price: 9.00, CategoryID: categories["potatoes"]},
		{UserID: users["jorge@agrizoo.local"], Name: "Valencia Oranges", Description: strPtr("Crate of tree-ripened oranges"), Price: 12.00, CategoryID: categories["citrus"]},
		{UserID: users["jorge@agrizoo.local"], Name: "Laying Hens", Description: strPtr("Point-of-lay brown hens"), Price: 15.00, CategoryID: categories["chickens"]},
		{UserID: users["mei@agrizoo.local"], Name: "Garden Hoe", Description: strPtr("Forged steel head, ash handle"), Price: 22.00, CategoryID: categories["hand-tools"]},
		{UserID: users["mei@agrizoo.local"], Name: "Layer Feed 25kg", Description: strPtr("Complete feed for laying poultry"), Price: 18.50, CategoryID: categories["feed"]},
	}

	for i := range products {
		if err := tx.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("  ✓ Seeded %d products", len(products))
	return nil
}

func seedPosts(tx *gorm.DB, users map[string]uint) error {
	posts := []models.Post{
		{UserID: users["amina@agrizoo.local"], Content: strPtr("First carrot harvest of the season is in!"), MediaType: models.MediaText, Visibility: models.VisibilityPublic},
		{UserID: users["jorge@agrizoo.local"], Content: strPtr("The hens started laying this week."), MediaType: models.MediaText, Visibility: models.VisibilityPublic},
		{UserID: users["mei@agrizoo.local"], Content: strPtr("Notes to self: rotate the north field next spring."), MediaType: models.MediaText, Visibility: models.VisibilityPrivate},
	}

	for i := range posts {
		if err := tx.Create(&posts[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("  ✓ Seeded %d posts", len(posts))
	return nil
}

func strPtr(s string) *string {
	return &s
}
