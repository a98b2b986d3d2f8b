package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"clinicapi/internal/model"
	"clinicapi/internal/realtime"
	"clinicapi/internal/repository"
	"clinicapi/internal/session"
	"clinicapi/internal/storage"
)

// SessionStore is the upload session registry as seen by the dispatcher.
type SessionStore interface {
	Create(patientID int64) (string, error)
	Resolve(token string) (int64, error)
	Consume(token string)
}

// UploadRecorder receives mobile upload outcomes.
type UploadRecorder interface {
	BatchStored(n int)
	BatchFailed(reason string)
}

type noopRecorder struct{}

func (noopRecorder) BatchStored(int)    {}
func (noopRecorder) BatchFailed(string) {}

// UploadCompleteData is the payload of the upload_complete event.
type UploadCompleteData struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// MobileUploadService hands a patient's document upload off to another device.
type MobileUploadService interface {
	// CreateSession issues a one-time token for one of the user's patients.
	CreateSession(ctx context.Context, userID, patientID int64) (string, error)

	// SessionPatient returns the patient behind a live token, if that patient belongs to the user.
	SessionPatient(ctx context.Context, userID int64, token string) (int64, error)

	// HandleUpload stores every file under the session's patient, in order, then
	// consumes the session and notifies subscribers of the token's channel.
	// A failure midway leaves earlier files stored and the session live.
	HandleUpload(ctx context.Context, token string, files []UploadFile) (int, error)
}

type mobileUploadService struct {
	sessions SessionStore
	patients repository.PatientRepository
	docs     repository.DocumentRepository
	store    storage.Storage
	pub      realtime.Publisher
	rec      UploadRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewMobileUploadService wires the dispatcher. rec may be nil.
func NewMobileUploadService(
	sessions SessionStore,
	patients repository.PatientRepository,
	docs repository.DocumentRepository,
	store storage.Storage,
	pub realtime.Publisher,
	rec UploadRecorder,
	log zerolog.Logger,
) MobileUploadService {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &mobileUploadService{
		sessions: sessions,
		patients: patients,
		docs:     docs,
		store:    store,
		pub:      pub,
		rec:      rec,
		log:      log.With().Str("component", "mobile_upload").Logger(),
		now:      time.Now,
	}
}

func (s *mobileUploadService) CreateSession(ctx context.Context, userID, patientID int64) (string, error) {
	if patientID <= 0 {
		return "", fmt.Errorf("%w: patientId required", ErrInvalidInput)
	}
	if _, err := s.patients.FindByID(ctx, userID, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPatientNotFound
		}
		return "", err
	}
	token, err := s.sessions.Create(patientID)
	if err != nil {
		return "", fmt.Errorf("create upload session: %w", err)
	}
	s.log.Info().Str("session_id", token).Int64("patient_id", patientID).Int64("user_id", userID).Msg("upload session issued")
	return token, nil
}

func (s *mobileUploadService) SessionPatient(ctx context.Context, userID int64, token string) (int64, error) {
	patientID, err := s.sessions.Resolve(token)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	if _, err := s.patients.FindByID(ctx, userID, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}
	return patientID, nil
}

func (s *mobileUploadService) HandleUpload(ctx context.Context, token string, files []UploadFile) (int, error) {
	if len(files) == 0 {
		s.rec.BatchFailed("no_files")
		return 0, ErrInvalidUpload
	}
	patientID, err := s.sessions.Resolve(token)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			s.log.Error().Err(err).Str("session_id", token).Msg("resolve upload session")
		}
		s.rec.BatchFailed("session_invalid")
		return 0, ErrSessionNotFound
	}

	// A started batch runs to completion even if the client goes away.
	ctx = context.WithoutCancel(ctx)
	log := s.log.With().Str("session_id", token).Int64("patient_id", patientID).Logger()

	for i, f := range files {
		if err := s.storeOne(ctx, patientID, i, f); err != nil {
			log.Error().Err(err).Int("index", i).Str("filename", f.Filename).Int("stored", i).Msg("mobile upload aborted")
			s.rec.BatchFailed("storage_error")
			return i, err
		}
	}

	n := len(files)
	s.sessions.Consume(token)
	s.rec.BatchStored(n)
	log.Info().Int("count", n).Msg("mobile upload stored")

	s.notify(ctx, token, n, log)
	return n, nil
}

func (s *mobileUploadService) storeOne(ctx context.Context, patientID int64, index int, f UploadFile) error {
	if f.Reader == nil {
		return fmt.Errorf("%w: %q has no content", ErrStorageFailure, f.Filename)
	}
	now := s.now()
	key := documentKey(patientID, fmt.Sprintf("%d-%d-%s", now.UnixMilli(), index, storedName(f.Filename)))

	if _, err := s.store.Put(ctx, key, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata:    map[string]string{"original-filename": f.Filename},
	}); err != nil {
		return fmt.Errorf("%w: write %q: %w", ErrStorageFailure, f.Filename, err)
	}

	if _, err := s.docs.Create(ctx, &model.Document{
		PatientID:  patientID,
		Name:       f.Filename,
		Path:       key,
		UploadDate: uploadDate(now),
	}); err != nil {
		return fmt.Errorf("%w: record %q: %w", ErrStorageFailure, f.Filename, err)
	}
	return nil
}

// notify is best-effort: failures are logged, never returned.
func (s *mobileUploadService) notify(ctx context.Context, token string, n int, log zerolog.Logger) {
	event, err := realtime.NewEvent(realtime.EventUploadComplete, token, UploadCompleteData{
		Message: fmt.Sprintf("%d file(s) uploaded successfully.", n),
		Count:   n,
	})
	if err == nil {
		err = s.pub.Publish(ctx, token, event)
	}
	if err != nil {
		log.Warn().Err(err).Msg("upload_complete notification failed")
	}
}
