package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafebooking/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo binds the repository to the "bookings" collection of db.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func (r *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert booking %s: %w", booking.BookingID, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert booking %s: %w", booking.BookingID, err)
	}
	return nil
}

func (r *MongoBookingRepo) FindOne(ctx context.Context, filter Filter) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, toBSON(filter)).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) FindMany(ctx context.Context, filter Filter, sort Sort) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find()
	switch sort {
	case SortNewestFirst:
		opts.SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})
	case SortByTime:
		opts.SetSort(bson.D{{Key: "time", Value: 1}})
	}

	cursor, err := r.coll.Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func toBSON(f Filter) bson.M {
	q := bson.M{}
	if f.BookingID != "" {
		q["bookingId"] = f.BookingID
	}
	if f.Date != "" {
		q["date"] = f.Date
	}
	if f.Time != "" {
		q["time"] = f.Time
	}
	switch {
	case f.Status != "" && f.ExcludeStatus != "":
		q["status"] = bson.M{"$eq": f.Status, "$ne": f.ExcludeStatus}
	case f.Status != "":
		q["status"] = f.Status
	case f.ExcludeStatus != "":
		q["status"] = bson.M{"$ne": f.ExcludeStatus}
	}
	return q
}
