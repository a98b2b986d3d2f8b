package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
	"clinicapi/internal/storage"
)

// PatientService manages a user's patient records.
type PatientService interface {
	List(ctx context.Context, userID int64) ([]model.Patient, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Patient, error)
	GetByName(ctx context.Context, userID int64, name string) (*model.Patient, error)
	Create(ctx context.Context, userID int64, p model.Patient) (int64, error)
	Update(ctx context.Context, userID, id int64, p model.Patient) error
	// Delete removes the patient and every dependent row, then its stored files on a best-effort basis.
	Delete(ctx context.Context, userID, id int64) error
}

type patientService struct {
	repo  repository.PatientRepository
	docs  repository.DocumentRepository
	store storage.Storage
	log   zerolog.Logger
}

func NewPatientService(repo repository.PatientRepository, docs repository.DocumentRepository, store storage.Storage, log zerolog.Logger) PatientService {
	return &patientService{
		repo:  repo,
		docs:  docs,
		store: store,
		log:   log.With().Str("component", "patients").Logger(),
	}
}

func validatePatient(p model.Patient) error {
	return requireFields(
		"name", p.Name,
		"creation_date", p.CreationDate,
		"sex", p.Sex,
		"date_of_birth", p.DateOfBirth,
	)
}

func patientErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrPatientNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrPatientExists
	}
	return err
}

func (s *patientService) List(ctx context.Context, userID int64) ([]model.Patient, error) {
	return s.repo.List(ctx, userID)
}

func (s *patientService) GetByID(ctx context.Context, userID, id int64) (*model.Patient, error) {
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, patientErr(err)
	}
	return p, nil
}

func (s *patientService) GetByName(ctx context.Context, userID int64, name string) (*model.Patient, error) {
	if err := requireFields("name", name); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByName(ctx, userID, name)
	if err != nil {
		return nil, patientErr(err)
	}
	return p, nil
}

func (s *patientService) Create(ctx context.Context, userID int64, p model.Patient) (int64, error) {
	if err := validatePatient(p); err != nil {
		return 0, err
	}
	p.ID = 0
	p.UserID = userID
	id, err := s.repo.Create(ctx, &p)
	if err != nil {
		return 0, patientErr(err)
	}
	return id, nil
}

func (s *patientService) Update(ctx context.Context, userID, id int64, p model.Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	p.ID = id
	p.UserID = userID
	return patientErr(s.repo.Update(ctx, &p))
}

func (s *patientService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return patientErr(err)
	}
	docs, err := s.docs.ListByPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return patientErr(err)
	}
	for _, d := range docs {
		if err := s.store.Delete(ctx, d.Path); err != nil {
			s.log.Warn().Err(err).Int64("patient_id", id).Str("key", d.Path).Msg("orphaned document file")
		}
	}
	return nil
}
