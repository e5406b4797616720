package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	repo := NewMongoDoctorRepoWithCollection(database.DB().Collection("doctors"))
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create doctor indexes", zap.Error(err))
	}
	return repo
}

// NewMongoDoctorRepoWithCollection wraps an existing collection without touching indexes.
func NewMongoDoctorRepoWithCollection(coll *mongo.Collection) *MongoDoctorRepo {
	return &MongoDoctorRepo{coll: coll}
}

func (r *MongoDoctorRepo) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, filter).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFound("doctor not found")
		}
		return nil, utils.NewStorageError("failed to fetch doctor", err)
	}
	normalizeDates(&doctor)
	return &doctor, nil
}

func (r *MongoDoctorRepo) find(ctx context.Context, filter bson.M) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, utils.NewStorageError("failed to retrieve doctors", err)
	}
	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, utils.NewStorageError("failed to decode doctors", err)
	}
	for i := range doctors {
		normalizeDates(&doctors[i])
	}
	return doctors, nil
}

// normalizeDates restores the UTC location BSON datetimes lose on decode.
func normalizeDates(d *models.Doctor) {
	for i := range d.Availability {
		d.Availability[i].Date = d.Availability[i].Date.UTC()
	}
}

// Create inserts a new doctor document with version 0.
func (r *MongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	if doctor.Availability == nil {
		doctor.Availability = []models.Availability{}
	}

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflict("doctor profile already exists for this user")
		}
		return utils.NewStorageError("failed to create doctor", err)
	}
	return nil
}

func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoDoctorRepo) GetByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *MongoDoctorRepo) GetAll(ctx context.Context) ([]models.Doctor, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoDoctorRepo) GetBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error) {
	return r.find(ctx, bson.M{"specialty": specialty})
}

func (r *MongoDoctorRepo) ReplaceAvailability(ctx context.Context, id string, availability []models.Availability, expectedVersion int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"availability": availability, "updatedAt": time.Now()},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if utils.IsTransientWrite(err) {
		return utils.NewWriteConflict("availability was modified concurrently", err)
	}
	if err != nil {
		return utils.NewStorageError("failed to save availability", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewConflict("availability was modified concurrently")
	}
	return nil
}

// setSlotAvailable flips exactly one slot from !available to available.
// The filter only matches while the slot is in the expected prior state,
// so two concurrent writers cannot both succeed.
func (r *MongoDoctorRepo) setSlotAvailable(ctx context.Context, id string, day time.Time, start, end string, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": id,
		"availability": bson.M{
			"$elemMatch": bson.M{
				"date": day,
				"slots": bson.M{
					"$elemMatch": bson.M{
						"startTime": start,
						"endTime":   end,
						"available": !available,
					},
				},
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"availability.$[day].slots.$[slot].available": available,
			"updatedAt": time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"day.date": day},
			bson.M{"slot.startTime": start, "slot.endTime": end, "slot.available": !available},
		},
	})

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if utils.IsTransientWrite(err) {
		return utils.NewWriteConflict(fmt.Sprintf("slot %s-%s is being updated concurrently", start, end), err)
	}
	if err != nil {
		return utils.NewStorageError(fmt.Sprintf("failed to update slot %s-%s", start, end), err)
	}
	if res.MatchedCount == 0 {
		if available {
			return utils.NewConflict("slot is not booked")
		}
		return utils.NewConflict("slot has already been booked")
	}
	return nil
}

func (r *MongoDoctorRepo) CloseSlot(ctx context.Context, id string, day time.Time, start, end string) error {
	return r.setSlotAvailable(ctx, id, day, start, end, false)
}

func (r *MongoDoctorRepo) ReopenSlot(ctx context.Context, id string, day time.Time, start, end string) error {
	return r.setSlotAvailable(ctx, id, day, start, end, true)
}
