package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"halo/database"
	"halo/models"
	"halo/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo() AppointmentRepository {
	repo := NewMongoAppointmentRepoWithCollection(database.DB().Collection("appointments"))
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}

func NewMongoAppointmentRepoWithCollection(coll *mongo.Collection) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: coll}
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return utils.NewStorageError("failed to create appointment", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFound("appointment not found")
		}
		return nil, utils.NewStorageError("failed to fetch appointment", err)
	}
	appt.Date = appt.Date.UTC()
	return &appt, nil
}

// listOrder is insertion order; _id breaks ties between equal timestamps.
var listOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (r *MongoAppointmentRepo) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(listOrder))
	if err != nil {
		return nil, utils.NewStorageError("failed to retrieve appointments", err)
	}
	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, utils.NewStorageError("failed to decode appointments", err)
	}
	for i := range appts {
		appts[i].Date = appts[i].Date.UTC()
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"patientId": patientID})
}

func (r *MongoAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"doctorId": doctorID})
}

func (r *MongoAppointmentRepo) UpdateReport(ctx context.Context, id, prescription, report string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"prescription": prescription,
		"report":       report,
		"updatedAt":    time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.NewStorageError("failed to save prescription", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFound("appointment not found")
	}
	return nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return utils.NewStorageError("failed to update appointment status", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewConflict(fmt.Sprintf("appointment is no longer %s", from))
	}
	return nil
}
