package schedulerRepo

import (
	"context"
	"fmt"

	"halo/models"
	"halo/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxTransactionAttempts bounds reruns of a transaction aborted by a
// transient write conflict.
const maxTransactionAttempts = 3

// withTransaction runs txnFn in a transaction, rerunning it while the server
// reports a transient conflict. Exhausted attempts surface as a Conflict.
func (repo *MongoSchedulerRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	var err error
	for attempt := 1; attempt <= maxTransactionAttempts; attempt++ {
		err = repo.runTxn(ctx, txnFn)
		if err == nil || !utils.IsTransientWrite(err) {
			return err
		}
		if attempt == maxTransactionAttempts || ctx.Err() != nil {
			break
		}
		utils.GetLogger().Warn("transaction hit a write conflict, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return utils.NewWriteConflict("slot is busy, please try again", err)
}

func (repo *MongoSchedulerRepo) runTransactionOnce(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	sess, err := repo.client.StartSession()
	if err != nil {
		return utils.NewStorageError("could not start mongo session", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return utils.NewStorageError("could not start transaction", err)
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			if utils.IsTransientWrite(err) {
				return utils.NewWriteConflict("transaction commit conflicted", err)
			}
			return utils.NewStorageError("could not commit transaction", err)
		}
		return nil
	})
}

func (repo *MongoSchedulerRepo) BookSlotTransactionally(ctx context.Context, appt *models.Appointment) error {
	if !repo.transactions {
		return repo.bookWithCompensation(ctx, appt)
	}

	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := repo.appointments.Create(sc, appt); err != nil {
			return err
		}
		return repo.doctors.CloseSlot(sc, appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime)
	})
	if err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// bookWithCompensation closes the slot first so the conditional update stays
// the single point of arbitration, then inserts the appointment. A failed
// insert reopens the slot.
func (repo *MongoSchedulerRepo) bookWithCompensation(ctx context.Context, appt *models.Appointment) error {
	if err := repo.doctors.CloseSlot(ctx, appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime); err != nil {
		return err
	}
	if err := repo.appointments.Create(ctx, appt); err != nil {
		if rbErr := repo.doctors.ReopenSlot(context.Background(), appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime); rbErr != nil {
			utils.GetLogger().Error("failed to reopen slot after aborted booking",
				zap.String("doctorId", appt.DoctorID),
				zap.Time("date", appt.Date),
				zap.String("startTime", appt.StartTime),
				zap.Error(rbErr))
		}
		return err
	}
	return nil
}

func (repo *MongoSchedulerRepo) CancelTransactionally(ctx context.Context, appt *models.Appointment) error {
	cancelFn := func(ctx context.Context) error {
		if err := repo.appointments.UpdateStatus(ctx, appt.ID, models.StatusConfirmed, models.StatusCancelled); err != nil {
			return err
		}
		err := repo.doctors.ReopenSlot(ctx, appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime)
		if utils.IsKind(err, utils.KindConflict) {
			// Slot already open; the cancellation still stands.
			utils.GetLogger().Warn("cancelled appointment slot was already open", zap.String("appointmentId", appt.ID))
			return nil
		}
		return err
	}

	if !repo.transactions {
		return cancelFn(ctx)
	}
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		return cancelFn(sc)
	})
	if err != nil {
		return fmt.Errorf("cancel transaction failed: %w", err)
	}
	return nil
}
