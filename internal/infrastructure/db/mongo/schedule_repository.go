package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

const (
	collectionDays      = "days"
	collectionSchedules = "schedules"
)

// ScheduleRepository reads the day/schedule catalog. The catalog is written by
// the seed tool (or an external back office), never by the portal itself.
type ScheduleRepository struct {
	days      *mongo.Collection
	schedules *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{
		days:      db.Collection(collectionDays),
		schedules: db.Collection(collectionSchedules),
	}
}

type dayDoc struct {
	ID        string `bson:"_id"`
	Label     string `bson:"label"`
	SortOrder int    `bson:"sort_order"`
}

type scheduleDoc struct {
	ID        string `bson:"_id"`
	DayID     string `bson:"day_id"`
	Label     string `bson:"label"`
	Time      string `bson:"time"`
	SortOrder int    `bson:"sort_order"`
}

// ListDays returns every catalog day ordered by sort key then id.
func (r *ScheduleRepository) ListDays(ctx context.Context) ([]domain.Day, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.days.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find days: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []dayDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode days: %w", err)
	}

	days := make([]domain.Day, 0, len(docs))
	for _, d := range docs {
		days = append(days, domain.Day{ID: d.ID, Label: d.Label, SortOrder: d.SortOrder})
	}
	return days, nil
}

// ListByDay returns every schedule whose day_id equals dayID, ordered by sort
// key then id. An unknown day simply matches nothing.
func (r *ScheduleRepository) ListByDay(ctx context.Context, dayID string) ([]domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.schedules.Find(ctx, bson.M{"day_id": dayID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []scheduleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}

	schedules := make([]domain.Schedule, 0, len(docs))
	for _, d := range docs {
		schedules = append(schedules, domain.Schedule{
			ID:        d.ID,
			DayID:     d.DayID,
			Label:     d.Label,
			Time:      d.Time,
			SortOrder: d.SortOrder,
		})
	}
	return schedules, nil
}

// EnsureIndexes creates the day_id index used by ListByDay.
func (r *ScheduleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.schedules.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "day_id", Value: 1}, {Key: "sort_order", Value: 1}},
	})
	return err
}
