// Command seed provisions a development database: one admin credential
// (ADMIN_EMAIL / ADMIN_PASSWORD) and a demo day/schedule catalog. Safe to run
// repeatedly; existing records are left alone.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookinglab/admin-portal/internal/core/domain"
	"github.com/bookinglab/admin-portal/internal/infrastructure/config"
	"github.com/bookinglab/admin-portal/internal/infrastructure/db/mongo"
	"github.com/bookinglab/admin-portal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	seedAdmin(ctx, db)
	seedCatalog(ctx, db)

	log.Info().Msg("seed complete")
}

func seedAdmin(ctx context.Context, db *mongodriver.Database) {
	log := logger.Get()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn().Msg("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	repo := mongo.NewAuthRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin index creation failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hash failed")
	}

	now := time.Now().UTC()
	_, err = repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         "Administrator",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Info().Str("email", email).Msg("admin already exists, skipping")
	case err != nil:
		log.Fatal().Err(err).Msg("admin seed failed")
	default:
		log.Info().Str("email", email).Msg("admin created")
	}
}

type catalogDay struct {
	id        string
	label     string
	schedules []catalogSchedule
}

type catalogSchedule struct {
	id    string
	label string
	time  string
}

var demoCatalog = []catalogDay{
	{id: "monday", label: "Monday", schedules: []catalogSchedule{
		{id: "mon-1", label: "Morning", time: "08:00"},
		{id: "mon-2", label: "Afternoon", time: "14:00"},
		{id: "mon-3", label: "Evening", time: "18:00"},
	}},
	{id: "tuesday", label: "Tuesday", schedules: []catalogSchedule{
		{id: "tue-1", label: "Morning", time: "09:00"},
		{id: "tue-2", label: "Evening", time: "19:00"},
	}},
	{id: "wednesday", label: "Wednesday", schedules: []catalogSchedule{
		{id: "wed-1", label: "Noon", time: "12:00"},
	}},
}

func seedCatalog(ctx context.Context, db *mongodriver.Database) {
	log := logger.Get()

	if err := mongo.NewScheduleRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("schedule index creation failed")
	}

	days := db.Collection("days")
	schedules := db.Collection("schedules")

	for order, day := range demoCatalog {
		_, err := days.UpdateOne(ctx,
			bson.M{"_id": day.id},
			bson.M{"$setOnInsert": bson.M{"label": day.label, "sort_order": order + 1}},
			updateUpsert(),
		)
		if err != nil {
			log.Fatal().Err(err).Str("day", day.id).Msg("day seed failed")
		}

		for sOrder, s := range day.schedules {
			_, err := schedules.UpdateOne(ctx,
				bson.M{"_id": s.id},
				bson.M{"$setOnInsert": bson.M{
					"day_id":     day.id,
					"label":      s.label,
					"time":       s.time,
					"sort_order": sOrder + 1,
				}},
				updateUpsert(),
			)
			if err != nil {
				log.Fatal().Err(err).Str("schedule", s.id).Msg("schedule seed failed")
			}
		}
	}

	log.Info().Int("days", len(demoCatalog)).Msg("catalog seeded")
}

func updateUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}
