package repository

import (
	appointmentRepo "halo/database/repository/appointment"
	doctorRepo "halo/database/repository/doctor"
	patientRepo "halo/database/repository/patient"
	schedulerRepo "halo/database/repository/scheduler"
	userRepo "halo/database/repository/user"
)

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo

// Re-export the PatientRepository interface and constructor.
type PatientRepository = patientRepo.PatientRepository

var NewMongoPatientRepository = patientRepo.NewMongoPatientRepo

// Re-export the DoctorRepository interface and constructor.
type DoctorRepository = doctorRepo.DoctorRepository

var NewMongoDoctorRepository = doctorRepo.NewMongoDoctorRepo

// Re-export the AppointmentRepository interface and constructor.
type AppointmentRepository = appointmentRepo.AppointmentRepository

var NewMongoAppointmentRepository = appointmentRepo.NewMongoAppointmentRepo

// Re-export the SchedulerRepository interface and constructor.
type SchedulerRepository = schedulerRepo.SchedulerRepository

var NewMongoSchedulerRepo = schedulerRepo.NewMongoSchedulerRepo
