package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/shared/timerange"
	"rentfleet/internal/domain/vehicles"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

// ---- vehicles ----

type VehicleRepository struct {
	col *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{col: db.Collection("agg_vehicle")}
}

type vehicleDocument struct {
	ID            string  `bson:"_id"`
	Host          string  `bson:"host_id"`
	Title         string  `bson:"title"`
	Make          string  `bson:"make"`
	Model         string  `bson:"model"`
	Year          int     `bson:"year"`
	Seats         int     `bson:"seats"`
	Transmission  string  `bson:"transmission"`
	DailyRate     float64 `bson:"daily_rate"`
	BufferMinutes int     `bson:"buffer_minutes"`
	State         string  `bson:"state"`
	CreatedAt     int64   `bson:"created_at"`
	UpdatedAt     int64   `bson:"updated_at"`
	Version       int64   `bson:"version"`
}

func (r *VehicleRepository) ByID(ctx context.Context, id vehicles.VehicleID) (*vehicles.Vehicle, error) {
	var doc vehicleDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, vehicles.ErrNotFound
		}
		return nil, err
	}
	return &vehicles.Vehicle{
		ID:            vehicles.VehicleID(doc.ID),
		Host:          vehicles.HostID(doc.Host),
		Title:         doc.Title,
		Make:          doc.Make,
		Model:         doc.Model,
		Year:          doc.Year,
		Seats:         doc.Seats,
		Transmission:  doc.Transmission,
		DailyRate:     doc.DailyRate,
		BufferMinutes: doc.BufferMinutes,
		State:         vehicles.VehicleState(doc.State),
		CreatedAt:     time.UnixMilli(doc.CreatedAt).UTC(),
		UpdatedAt:     time.UnixMilli(doc.UpdatedAt).UTC(),
		Version:       doc.Version,
	}, nil
}

func (r *VehicleRepository) Save(ctx context.Context, v *vehicles.Vehicle) error {
	doc := vehicleDocument{
		ID:            string(v.ID),
		Host:          string(v.Host),
		Title:         v.Title,
		Make:          v.Make,
		Model:         v.Model,
		Year:          v.Year,
		Seats:         v.Seats,
		Transmission:  v.Transmission,
		DailyRate:     v.DailyRate,
		BufferMinutes: v.BufferMinutes,
		State:         string(v.State),
		CreatedAt:     v.CreatedAt.UnixMilli(),
		UpdatedAt:     v.UpdatedAt.UnixMilli(),
		Version:       v.Version + 1,
	}
	return casUpsert(ctx, r.col, doc.ID, v.Version, doc, &v.Version)
}

// ---- intervals ----

type IntervalRepository struct {
	col *mongo.Collection
}

func NewIntervalRepository(db *mongo.Database) *IntervalRepository {
	col := db.Collection("calendar_intervals")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "active", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &IntervalRepository{col: col}
}

type intervalDocument struct {
	ID        string `bson:"_id"`
	VehicleID string `bson:"vehicle_id"`
	Kind      string `bson:"kind"`
	StartAt   int64  `bson:"start_at"`
	EndAt     int64  `bson:"end_at"`
	Active    bool   `bson:"active"`
}

func (r *IntervalRepository) ActiveByVehicle(ctx context.Context, id vehicles.VehicleID) ([]schedule.Interval, error) {
	cursor, err := r.col.Find(ctx, bson.M{"vehicle_id": string(id), "active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []schedule.Interval
	for cursor.Next(ctx) {
		var doc intervalDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, schedule.Interval{
			ID:        schedule.IntervalID(doc.ID),
			VehicleID: vehicles.VehicleID(doc.VehicleID),
			Kind:      schedule.Kind(doc.Kind),
			Span: timerange.Range{
				Start: time.UnixMilli(doc.StartAt).UTC(),
				End:   time.UnixMilli(doc.EndAt).UTC(),
			},
			Active: doc.Active,
		})
	}
	return out, cursor.Err()
}

func (r *IntervalRepository) Save(ctx context.Context, iv schedule.Interval) error {
	doc := intervalDocument{
		ID:        string(iv.ID),
		VehicleID: string(iv.VehicleID),
		Kind:      string(iv.Kind),
		StartAt:   iv.Span.Start.UnixMilli(),
		EndAt:     iv.Span.End.UnixMilli(),
		Active:    iv.Active,
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *IntervalRepository) Deactivate(ctx context.Context, id schedule.IntervalID) error {
	_, err := r.col.UpdateByID(ctx, string(id), bson.M{"$set": bson.M{"active": false}})
	return err
}

// ---- rate tables ----

type RateRepository struct {
	col *mongo.Collection
}

func NewRateRepository(db *mongo.Database) *RateRepository {
	return &RateRepository{col: db.Collection("rate_tables")}
}

type tierDocument struct {
	MinDays         int     `bson:"min_days"`
	DiscountPercent float64 `bson:"discount_percent"`
}

type seasonDocument struct {
	StartDate         int64   `bson:"start_date"`
	EndDate           int64   `bson:"end_date"`
	AdjustmentPercent float64 `bson:"adjustment_percent"`
}

type rateTableDocument struct {
	VehicleID string           `bson:"_id"`
	Tiers     []tierDocument   `bson:"tiers"`
	Seasons   []seasonDocument `bson:"seasons"`
	Version   int64            `bson:"version"`
	UpdatedAt int64            `bson:"updated_at"`
}

func (r *RateRepository) ByVehicle(ctx context.Context, id vehicles.VehicleID) (rates.Table, error) {
	var doc rateTableDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return rates.Table{VehicleID: id}, nil
		}
		return rates.Table{}, err
	}
	table := rates.Table{
		VehicleID: vehicles.VehicleID(doc.VehicleID),
		Version:   doc.Version,
		UpdatedAt: time.UnixMilli(doc.UpdatedAt).UTC(),
	}
	for _, tier := range doc.Tiers {
		table.Tiers = append(table.Tiers, rates.DiscountTier{
			MinDays:         tier.MinDays,
			DiscountPercent: tier.DiscountPercent,
		})
	}
	for _, season := range doc.Seasons {
		table.Seasons = append(table.Seasons, rates.SeasonalRate{
			StartDate:         time.UnixMilli(season.StartDate).UTC(),
			EndDate:           time.UnixMilli(season.EndDate).UTC(),
			AdjustmentPercent: season.AdjustmentPercent,
		})
	}
	return table, nil
}

func (r *RateRepository) Save(ctx context.Context, table rates.Table) error {
	doc := rateTableDocument{
		VehicleID: string(table.VehicleID),
		Version:   table.Version + 1,
		UpdatedAt: table.UpdatedAt.UnixMilli(),
	}
	for _, tier := range table.Tiers {
		doc.Tiers = append(doc.Tiers, tierDocument{
			MinDays:         tier.MinDays,
			DiscountPercent: tier.DiscountPercent,
		})
	}
	for _, season := range table.Seasons {
		doc.Seasons = append(doc.Seasons, seasonDocument{
			StartDate:         season.StartDate.UnixMilli(),
			EndDate:           season.EndDate.UnixMilli(),
			AdjustmentPercent: season.AdjustmentPercent,
		})
	}
	return casUpsert(ctx, r.col, doc.VehicleID, table.Version, doc, nil)
}

// ---- reservations ----

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	col := db.Collection("agg_reservation")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "guest_id", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &ReservationRepository{col: col}
}

type reservationDocument struct {
	ID         string      `bson:"_id"`
	VehicleID  string      `bson:"vehicle_id"`
	GuestID    string      `bson:"guest_id"`
	StartAt    int64       `bson:"start_at"`
	EndAt      int64       `bson:"end_at"`
	IntervalID string      `bson:"interval_id"`
	Quote      rates.Quote `bson:"quote"`
	State      string      `bson:"state"`
	CreatedAt  int64       `bson:"created_at"`
	UpdatedAt  int64       `bson:"updated_at"`
	Version    int64       `bson:"version"`
}

func (r *ReservationRepository) ByID(ctx context.Context, id booking.ReservationID) (*booking.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *booking.Reservation) error {
	doc := reservationDocument{
		ID:         string(res.ID),
		VehicleID:  string(res.VehicleID),
		GuestID:    res.GuestID,
		StartAt:    res.Span.Start.UnixMilli(),
		EndAt:      res.Span.End.UnixMilli(),
		IntervalID: string(res.IntervalID),
		Quote:      res.Quote,
		State:      string(res.State),
		CreatedAt:  res.CreatedAt.UnixMilli(),
		UpdatedAt:  res.UpdatedAt.UnixMilli(),
		Version:    res.Version + 1,
	}
	return casUpsert(ctx, r.col, doc.ID, res.Version, doc, &res.Version)
}

func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID string) ([]*booking.Reservation, error) {
	cursor, err := r.col.Find(ctx, bson.M{"guest_id": guestID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*booking.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (doc reservationDocument) toAggregate() *booking.Reservation {
	return &booking.Reservation{
		ID:        booking.ReservationID(doc.ID),
		VehicleID: vehicles.VehicleID(doc.VehicleID),
		GuestID:   doc.GuestID,
		Span: timerange.Range{
			Start: time.UnixMilli(doc.StartAt).UTC(),
			End:   time.UnixMilli(doc.EndAt).UTC(),
		},
		IntervalID: schedule.IntervalID(doc.IntervalID),
		Quote:      doc.Quote,
		State:      booking.ReservationState(doc.State),
		CreatedAt:  time.UnixMilli(doc.CreatedAt).UTC(),
		UpdatedAt:  time.UnixMilli(doc.UpdatedAt).UTC(),
		Version:    doc.Version,
	}
}

// casUpsert writes a versioned document, failing when another writer bumped
// the version first; at-most-one-writer-wins at commit time.
func casUpsert(ctx context.Context, col *mongo.Collection, id string, version int64, doc any, bump *int64) error {
	filter := bson.M{"_id": id, "version": version}
	opts := options.Update().SetUpsert(true)
	res, err := col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	if bump != nil {
		*bump = version + 1
	}
	return nil
}
