package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackgods/meeting-scheduler/internal/db"
	"github.com/hackgods/meeting-scheduler/internal/scheduling"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	users := flag.Int("users", 50, "number of fake users to seed besides demo")
	days := flag.Int("days", 10, "number of working days of availability per user")
	flag.Parse()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	if err := seedUser(context.Background(), pool, "demo", scheduling.DemoSeed()); err != nil {
		log.Fatalf("seed demo user: %v", err)
	}

	faker := gofakeit.New(0)
	start := nextMonday(time.Now().UTC())

	for i := 0; i < *users; i++ {
		userID := faker.Username()
		if err := seedUser(context.Background(), pool, userID, fakeSeed(faker, start, *days)); err != nil {
			log.Fatalf("seed user %s: %v", userID, err)
		}
		log.Printf("users seeded: %d/%d", i+1, *users)
	}

	log.Println("seed complete")
}

// fakeSeed builds one availability slot per working day and a few meetings
// inside those slots. Every generated meeting satisfies the containment rule.
func fakeSeed(faker *gofakeit.Faker, from time.Time, days int) scheduling.Seed {
	var seed scheduling.Seed

	day := from
	for len(seed.Availability) < days {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
			continue
		}

		openHour := faker.Number(8, 11)
		closeHour := faker.Number(15, 18)
		slot := scheduling.AvailabilitySlot{
			ID:          uuid.NewString(),
			Start:       day.Add(time.Duration(openHour) * time.Hour),
			End:         day.Add(time.Duration(closeHour) * time.Hour),
			DisplayHint: "background",
		}
		seed.Availability = append(seed.Availability, slot)

		if faker.Bool() {
			offset := time.Duration(faker.Number(0, closeHour-openHour-1)) * time.Hour
			meetingStart := slot.Start.Add(offset)
			seed.Meetings = append(seed.Meetings, scheduling.Meeting{
				ID:          uuid.NewString(),
				Title:       faker.Company() + " intro",
				Description: faker.Phrase(),
				Start:       meetingStart,
				End:         meetingStart.Add(30 * time.Minute),
				Status:      randomStatus(faker),
				CreatedAt:   from.AddDate(0, 0, -1),
				UpdatedAt:   from.AddDate(0, 0, -1),
			})
		}

		day = day.AddDate(0, 0, 1)
	}

	return seed
}

func randomStatus(faker *gofakeit.Faker) scheduling.MeetingStatus {
	statuses := []scheduling.MeetingStatus{
		scheduling.StatusRequested,
		scheduling.StatusConfirmed,
		scheduling.StatusDeclined,
	}
	return statuses[faker.Number(0, len(statuses)-1)]
}

func nextMonday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, userID string, seed scheduling.Seed) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for pos, slot := range seed.Availability {
		_, err := tx.Exec(ctx, `
			INSERT INTO availability_slots (id, user_id, position, start_time, end_time, display_hint)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id, id) DO NOTHING
		`, slot.ID, userID, pos, slot.Start, slot.End, slot.DisplayHint)
		if err != nil {
			return err
		}
	}

	for _, m := range seed.Meetings {
		_, err := tx.Exec(ctx, `
			INSERT INTO meetings (id, user_id, title, description, start_time, end_time, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (user_id, id) DO NOTHING
		`, m.ID, userID, m.Title, m.Description, m.Start, m.End, string(m.Status), m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
