package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"cafebooking/config"
	"cafebooking/database"
	bookingRepo "cafebooking/database/repository/booking"
	"cafebooking/models"
	"cafebooking/services/booking"
	"cafebooking/utils"
)

var (
	guestNames = []string{"Amina Njeri", "Brian Otieno", "Chloe Martin", "Diego Alvarez", "Esther Wanjiku", "Farah Khan"}
	services   = []string{"Table for two", "Family brunch", "Coffee tasting", "Birthday corner", ""}
)

// Seeds the bookings collection with random bookings over the next days.
func main() {
	days := flag.Int("days", 7, "number of days to seed, starting tomorrow")
	perDay := flag.Int("per-day", 4, "bookings to attempt per day")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()

	db, err := database.InitDB(logger)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer database.CloseDB(context.Background())

	repo := bookingRepo.NewMongoBookingRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	slots := booking.BusinessSlots()
	created, skipped := 0, 0
	for d := 1; d <= *days; d++ {
		date := time.Now().AddDate(0, 0, d).Format("2006-01-02")
		for i := 0; i < *perDay; i++ {
			name := guestNames[rand.Intn(len(guestNames))]
			now := time.Now()
			record := models.Booking{
				BookingID: utils.GenerateBookingID(),
				UserName:  name,
				UserEmail: fmt.Sprintf("guest%d@example.com", rand.Intn(1000)),
				Date:      date,
				Time:      slots[rand.Intn(len(slots))],
				Service:   services[rand.Intn(len(services))],
				Status:    models.StatusConfirmed,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repo.Insert(ctx, &record); err != nil {
				if errors.Is(err, bookingRepo.ErrDuplicate) {
					skipped++
					continue
				}
				log.Fatalf("Failed to insert booking: %v", err)
			}
			created++
		}
	}

	fmt.Printf("Seeded %d bookings (%d slot collisions skipped)\n", created, skipped)
}
