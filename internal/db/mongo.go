package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/tourfleet/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoFleet stores the fleet collections in one MongoDB database.
type MongoFleet struct {
	Vehicles    *mongo.Collection
	Drivers     *mongo.Collection
	Routes      *mongo.Collection
	Assignments *mongo.Collection
	Seq         *Sequence
}

// NewMongoFleet binds the fleet collections of database.
func NewMongoFleet(database *mongo.Database) *MongoFleet {
	return &MongoFleet{
		Vehicles:    database.Collection("vehicles"),
		Drivers:     database.Collection("drivers"),
		Routes:      database.Collection("routes"),
		Assignments: database.Collection("assignments"),
		Seq:         &Sequence{Collection: database.Collection("counters")},
	}
}

// EnsureIndexes creates the unique and lookup indexes the API relies on.
func (f *MongoFleet) EnsureIndexes(ctx context.Context) error {
	if _, err := f.Vehicles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "plate", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("vehicles index: %w", err)
	}
	if _, err := f.Drivers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "document_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("drivers index: %w", err)
	}
	if _, err := f.Assignments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "departure_at", Value: 1}},
	}); err != nil {
		return fmt.Errorf("assignments index: %w", err)
	}
	return nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	if coll == nil {
		return nil, errors.New("mongo collection is nil")
	}
	cursor, err := coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id int64) (*T, error) {
	if coll == nil {
		return nil, errors.New("mongo collection is nil")
	}
	var doc T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	if coll == nil {
		return errors.New("mongo collection is nil")
	}
	_, err := coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func replaceByID(ctx context.Context, coll *mongo.Collection, id int64, doc interface{}) error {
	if coll == nil {
		return errors.New("mongo collection is nil")
	}
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func setFields(ctx context.Context, coll *mongo.Collection, id int64, fields bson.M) error {
	if coll == nil {
		return errors.New("mongo collection is nil")
	}
	fields["updated_at"] = time.Now()
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id int64) error {
	if coll == nil {
		return errors.New("mongo collection is nil")
	}
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertVehicle assigns the next vehicle id and stores the record.
func (f *MongoFleet) InsertVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	id, err := f.Seq.Next(ctx, "vehicles")
	if err != nil {
		return err
	}
	vehicle.ID = id
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	return insertOne(ctx, f.Vehicles, vehicle)
}

// ListVehicles returns vehicles newest first, optionally with one status.
func (f *MongoFleet) ListVehicles(ctx context.Context, status models.VehicleStatus) ([]models.Vehicle, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return findAll[models.Vehicle](ctx, f.Vehicles, filter)
}

func (f *MongoFleet) FindVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	return findByID[models.Vehicle](ctx, f.Vehicles, id)
}

// UpdateVehicle replaces the stored vehicle with the same id.
func (f *MongoFleet) UpdateVehicle(ctx context.Context, vehicle models.Vehicle) error {
	vehicle.UpdatedAt = time.Now()
	return replaceByID(ctx, f.Vehicles, vehicle.ID, vehicle)
}

func (f *MongoFleet) SetVehicleStatus(ctx context.Context, id int64, status models.VehicleStatus) error {
	return setFields(ctx, f.Vehicles, id, bson.M{"status": status})
}

func (f *MongoFleet) DeleteVehicle(ctx context.Context, id int64) error {
	return deleteByID(ctx, f.Vehicles, id)
}

// InsertDriver assigns the next driver id and stores the record.
func (f *MongoFleet) InsertDriver(ctx context.Context, driver *models.Driver) error {
	id, err := f.Seq.Next(ctx, "drivers")
	if err != nil {
		return err
	}
	driver.ID = id
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt
	return insertOne(ctx, f.Drivers, driver)
}

func (f *MongoFleet) ListDrivers(ctx context.Context, filter DriverFilter) ([]models.Driver, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["active"] = true
	}
	if !filter.LicenseValidAt.IsZero() {
		query["license_expiry"] = bson.M{"$gt": filter.LicenseValidAt}
	}
	return findAll[models.Driver](ctx, f.Drivers, query)
}

func (f *MongoFleet) FindDriverByID(ctx context.Context, id int64) (*models.Driver, error) {
	return findByID[models.Driver](ctx, f.Drivers, id)
}

func (f *MongoFleet) UpdateDriver(ctx context.Context, driver models.Driver) error {
	driver.UpdatedAt = time.Now()
	return replaceByID(ctx, f.Drivers, driver.ID, driver)
}

func (f *MongoFleet) SetDriverActive(ctx context.Context, id int64, active bool) error {
	return setFields(ctx, f.Drivers, id, bson.M{"active": active})
}

func (f *MongoFleet) DeleteDriver(ctx context.Context, id int64) error {
	return deleteByID(ctx, f.Drivers, id)
}

// InsertRoute assigns the next route id and stores the record.
func (f *MongoFleet) InsertRoute(ctx context.Context, route *models.Route) error {
	id, err := f.Seq.Next(ctx, "routes")
	if err != nil {
		return err
	}
	route.ID = id
	route.CreatedAt = time.Now()
	route.UpdatedAt = route.CreatedAt
	return insertOne(ctx, f.Routes, route)
}

func (f *MongoFleet) ListRoutes(ctx context.Context, status models.RouteStatus) ([]models.Route, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return findAll[models.Route](ctx, f.Routes, filter)
}

func (f *MongoFleet) FindRouteByID(ctx context.Context, id int64) (*models.Route, error) {
	return findByID[models.Route](ctx, f.Routes, id)
}

func (f *MongoFleet) UpdateRoute(ctx context.Context, route models.Route) error {
	route.UpdatedAt = time.Now()
	return replaceByID(ctx, f.Routes, route.ID, route)
}

func (f *MongoFleet) SetRouteStatus(ctx context.Context, id int64, status models.RouteStatus) error {
	return setFields(ctx, f.Routes, id, bson.M{"status": status})
}

func (f *MongoFleet) DeleteRoute(ctx context.Context, id int64) error {
	return deleteByID(ctx, f.Routes, id)
}

// InsertAssignment assigns the next assignment id and stores the record.
func (f *MongoFleet) InsertAssignment(ctx context.Context, assignment *models.Assignment) error {
	id, err := f.Seq.Next(ctx, "assignments")
	if err != nil {
		return err
	}
	assignment.ID = id
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt
	return insertOne(ctx, f.Assignments, assignment)
}

// ListAssignments returns assignments newest first within the filter window.
func (f *MongoFleet) ListAssignments(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	query := bson.M{}
	departure := bson.M{}
	if !filter.From.IsZero() {
		departure["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		departure["$lt"] = filter.To
	}
	if len(departure) > 0 {
		query["departure_at"] = departure
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return findAll[models.Assignment](ctx, f.Assignments, query)
}

func (f *MongoFleet) FindAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	return findByID[models.Assignment](ctx, f.Assignments, id)
}

func (f *MongoFleet) UpdateAssignment(ctx context.Context, assignment models.Assignment) error {
	assignment.UpdatedAt = time.Now()
	return replaceByID(ctx, f.Assignments, assignment.ID, assignment)
}

func (f *MongoFleet) SetAssignmentStatus(ctx context.Context, id int64, status models.AssignmentStatus) error {
	return setFields(ctx, f.Assignments, id, bson.M{"status": status})
}

func (f *MongoFleet) DeleteAssignment(ctx context.Context, id int64) error {
	return deleteByID(ctx, f.Assignments, id)
}
