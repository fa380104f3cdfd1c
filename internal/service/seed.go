package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"lost-and-found/internal/model"
)

// seedWindow bounds how far back a seeded dateFound may fall (about eleven days).
const seedWindow = 1_000_000_000 * time.Millisecond

var sampleItems = []model.Item{
	{Name: "Blue Water Bottle", Description: "Stainless steel blue water bottle with AdU sticker.", Image: "https://images.unsplash.com/photo-1602143407151-7111542de6e8?auto=format&fit=crop&w=400&q=80", LocationFound: "Library - 3rd Floor", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Personal Items"},
	{Name: "Black Backpack", Description: "Black Nike backpack with red zipper, contains notebooks.", Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?auto=format&fit=crop&w=400&q=80", LocationFound: "Ozanam Building - Room 305", ClaimLocation: "ST Gate", Status: model.ItemStatusUnclaimed, Category: "Bags"},
	{Name: "Prescription Eyeglasses", Description: "Black rectangular frames with case.", Image: "https://images.unsplash.com/photo-1577803645773-f96470509666?auto=format&fit=crop&w=400&q=80", LocationFound: "Adamson Hall - Canteen", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Personal Items"},
	{Name: "Silver Laptop", Description: "MacBook Pro 13-inch, Space Gray, has AdU ID sticker.", Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca4?auto=format&fit=crop&w=400&q=80", LocationFound: "St. Vincent Building - Computer Lab 1", ClaimLocation: "ST Gate", Status: model.ItemStatusClaimed, Category: "Electronics"},
	{Name: "iPhone 12", Description: "White iPhone 12 with cracked screen protector, blue case.", Image: "https://images.unsplash.com/photo-1510557880182-3d4d3cba35a5?auto=format&fit=crop&w=400&q=80", LocationFound: "Cardinal Santos Building - Lobby", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Electronics"},
	{Name: "Brown Leather Wallet", Description: "Brown leather wallet with IDs inside (name withheld).", Image: "https://images.unsplash.com/photo-1627123424574-724758594e93?auto=format&fit=crop&w=400&q=80", LocationFound: "Basketball Court - Bleachers", ClaimLocation: "ST Gate", Status: model.ItemStatusUnclaimed, Category: "Personal Items"},
	{Name: "Scientific Calculator", Description: `Casio fx-991ES Plus, has name "Juan" written on back.`, Image: "https://images.unsplash.com/photo-1594729095022-e2f6d2eece9c?auto=format&fit=crop&w=400&q=80", LocationFound: "Ozanam Building - 4th Floor", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Electronics"},
	{Name: "Umbrella", Description: "Black foldable umbrella, automatic button.", Image: "https://images.unsplash.com/photo-1556909212-d5b604d0c90d?auto=format&fit=crop&w=400&q=80", LocationFound: "ST Annex - Lobby", ClaimLocation: "ST Gate", Status: model.ItemStatusUnclaimed, Category: "Personal Items"},
	{Name: "PE Uniform Shirt", Description: "AdU PE shirt, size Medium, found near gym.", Image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=400&q=80", LocationFound: "Basketball Court", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Clothing"},
	{Name: "Accounting Textbook", Description: "Financial Accounting Vol 1, Valix. Highlighted pages.", Image: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&w=400&q=80", LocationFound: "Library - 2nd Floor", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Books"},
	{Name: "Wireless Earbuds", Description: "White casing, generic brand. Found on bench.", Image: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?auto=format&fit=crop&w=400&q=80", LocationFound: "Carlos Tiu Building", ClaimLocation: "ST Gate", Status: model.ItemStatusUnclaimed, Category: "Electronics"},
	{Name: "Tumbler (Pink)", Description: "Pink Starbucks tumbler, slight dent on bottom.", Image: "https://images.unsplash.com/photo-1513558161293-cdaf765ed2fd?auto=format&fit=crop&w=400&q=80", LocationFound: "Adamson Hall - Walkway", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Personal Items"},
	{Name: "Car Keys", Description: "Toyota key fob with leather strap.", Image: "https://images.unsplash.com/photo-1576497471836-96b63750eb49?auto=format&fit=crop&w=400&q=80", LocationFound: "Parking Lot", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Personal Items"},
	{Name: "ID Lace / Lanyard", Description: "Adamson University Falcons lanyard.", Image: "https://images.unsplash.com/photo-1596249673898-38bbd62e151b?auto=format&fit=crop&w=400&q=80", LocationFound: "Main Gate", ClaimLocation: "CS", Status: model.ItemStatusUnclaimed, Category: "Personal Items"},
}

// SampleItemCount is the number of items one seed run creates.
var SampleItemCount = len(sampleItems)

// sampleBatch returns fresh copies of the sample items with a random name suffix and
// a random dateFound inside seedWindow, so repeated seeding produces distinct rows.
func sampleBatch(now time.Time, randN func(int64) int64) []model.Item {
	batch := make([]model.Item, 0, len(sampleItems))
	for _, tmpl := range sampleItems {
		it := tmpl
		it.ID = uuid.NewString()
		it.Name = fmt.Sprintf("%s %d", tmpl.Name, randN(1000))
		it.DateFound = now.Add(-time.Duration(randN(int64(seedWindow)))).UTC().Format("2006-01-02")
		it.CreatedAt = now.UTC()
		batch = append(batch, it)
	}
	return batch
}
