package patientRepo

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

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

func NewMongoPatientRepo() PatientRepository {
	repo := &MongoPatientRepo{coll: database.DB().Collection("patients")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create patient indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) findOne(ctx context.Context, filter bson.M) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, filter).Decode(&patient); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFound("patient not found")
		}
		return nil, utils.NewStorageError("failed to fetch patient", err)
	}
	return &patient, nil
}

func (r *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflict("a patient with this username already exists")
		}
		return utils.NewStorageError("failed to create patient", err)
	}
	return nil
}

func (r *MongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoPatientRepo) GetByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *MongoPatientRepo) GetByUsername(ctx context.Context, username string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoPatientRepo) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, utils.NewStorageError("failed to retrieve patients", err)
	}
	patients := []models.Patient{}
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, utils.NewStorageError("failed to decode patients", err)
	}
	return patients, nil
}

func (r *MongoPatientRepo) SetStripeCustomerID(ctx context.Context, id, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"stripeCustomerId": customerID, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.NewStorageError("failed to store stripe customer", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFound("patient not found")
	}
	return nil
}

func (r *MongoPatientRepo) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return utils.NewStorageError("failed to delete patient", err)
	}
	return nil
}
