package schedulerRepo

import (
	"context"

	appointmentRepo "halo/database/repository/appointment"
	doctorRepo "halo/database/repository/doctor"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSchedulerRepo implements SchedulerRepository on top of the doctor and
// appointment repositories. Session contexts flow through their ctx arguments.
type MongoSchedulerRepo struct {
	client       *mongo.Client
	doctors      doctorRepo.DoctorRepository
	appointments appointmentRepo.AppointmentRepository
	transactions bool
	// runTxn runs one transaction attempt; replaced in tests.
	runTxn func(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error
}

// NewMongoSchedulerRepo constructs a scheduler. With transactions disabled
// (standalone mongod) writes are ordered and compensated instead.
func NewMongoSchedulerRepo(
	client *mongo.Client,
	doctors doctorRepo.DoctorRepository,
	appointments appointmentRepo.AppointmentRepository,
	transactions bool,
) SchedulerRepository {
	repo := &MongoSchedulerRepo{
		client:       client,
		doctors:      doctors,
		appointments: appointments,
		transactions: transactions,
	}
	repo.runTxn = repo.runTransactionOnce
	return repo
}
