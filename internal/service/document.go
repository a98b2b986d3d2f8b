package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
	"clinicapi/internal/storage"
)

// DocumentFile is an open stored document. The caller closes Body.
type DocumentFile struct {
	Document    *model.Document
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// DocumentService defines the desktop use cases for a patient's documents.
type DocumentService interface {
	// Upload stores the file, then records it; the stored file is removed again if the record fails.
	Upload(ctx context.Context, userID, patientID int64, f UploadFile) (*model.Document, error)

	// List returns the patient's documents, newest first.
	List(ctx context.Context, userID, patientID int64) ([]model.Document, error)

	// Open streams a document's stored file.
	Open(ctx context.Context, userID, patientID, documentID int64) (*DocumentFile, error)

	// Delete removes the stored file (a missing file is ignored), then the record.
	Delete(ctx context.Context, userID, patientID, documentID int64) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	patients repository.PatientRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, patients repository.PatientRepository, log zerolog.Logger) DocumentService {
	return &documentService{
		store:    store,
		repo:     repo,
		patients: patients,
		log:      log.With().Str("component", "documents").Logger(),
		now:      time.Now,
	}
}

// ownPatient checks that the patient exists and belongs to the user.
func ownPatient(ctx context.Context, patients repository.PatientRepository, userID, patientID int64) error {
	if _, err := patients.FindByID(ctx, userID, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPatientNotFound
		}
		return err
	}
	return nil
}

func (s *documentService) Upload(ctx context.Context, userID, patientID int64, f UploadFile) (*model.Document, error) {
	if f.Reader == nil {
		return nil, ErrInvalidUpload
	}
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}

	now := s.now()
	key := documentKey(patientID, fmt.Sprintf("%d-%s", now.UnixMilli(), storedName(f.Filename)))

	if _, err := s.store.Put(ctx, key, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata:    map[string]string{"original-filename": f.Filename},
	}); err != nil {
		return nil, fmt.Errorf("%w: upload to storage: %w", ErrStorageFailure, err)
	}

	stored, err := s.repo.Create(ctx, &model.Document{
		PatientID:  patientID,
		Name:       f.Filename,
		Path:       key,
		UploadDate: uploadDate(now),
	})
	if err != nil {
		// Rollback: delete the stored file
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Error().Err(delErr).Str("key", key).Msg("rollback delete failed")
			return nil, fmt.Errorf("%w: db save failed: %v; rollback delete failed: %v", ErrStorageFailure, err, delErr)
		}
		return nil, fmt.Errorf("%w: db save failed: %w", ErrStorageFailure, err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, userID, patientID int64) ([]model.Document, error) {
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *documentService) find(ctx context.Context, userID, patientID, documentID int64) (*model.Document, error) {
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	doc, err := s.repo.FindForPatient(ctx, patientID, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Open(ctx context.Context, userID, patientID, documentID int64) (*DocumentFile, error) {
	doc, err := s.find(ctx, userID, patientID, documentID)
	if err != nil {
		return nil, err
	}
	body, info, err := s.store.Get(ctx, doc.Path)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: open %q: %w", ErrStorageFailure, doc.Path, err)
	}
	return &DocumentFile{Document: doc, Body: body, Size: info.Size, ContentType: info.ContentType}, nil
}

// Delete removes the stored file first; if that fails the record is kept so the file is not orphaned.
func (s *documentService) Delete(ctx context.Context, userID, patientID, documentID int64) error {
	doc, err := s.find(ctx, userID, patientID, documentID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.Path); err != nil {
		return fmt.Errorf("%w: delete storage: %w", ErrStorageFailure, err)
	}
	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}
	return nil
}
