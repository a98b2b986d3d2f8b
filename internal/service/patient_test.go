package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
	repoMocks "clinicapi/internal/repository/mocks"
	storeMocks "clinicapi/internal/storage/mocks"
)

func validPatient() model.Patient {
	return model.Patient{Name: "Lina", CreationDate: "2024-01-01", Sex: "F", DateOfBirth: "2019-03-02"}
}

func TestPatientService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		patient    model.Patient
		setupMocks func(mRepo *repoMocks.MockPatientRepository)
		wantID     int64
		wantErr    error
		wantErrMsg string
	}{
		{
			name:    "happy path",
			patient: validPatient(),
			setupMocks: func(mRepo *repoMocks.MockPatientRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Patient) bool {
					return p.UserID == 1 && p.ID == 0 && p.Name == "Lina"
				})).Return(int64(9), nil)
			},
			wantID: 9,
		},
		{
			name:       "missing required fields",
			patient:    model.Patient{Name: "Lina"},
			setupMocks: func(mRepo *repoMocks.MockPatientRepository) {},
			wantErr:    ErrInvalidInput,
			wantErrMsg: "creation_date, sex, date_of_birth required",
		},
		{
			name:    "duplicate name",
			patient: validPatient(),
			setupMocks: func(mRepo *repoMocks.MockPatientRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(int64(0), repository.ErrDuplicate)
			},
			wantErr: ErrPatientExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockPatientRepository)
			tt.setupMocks(mRepo)

			id, err := NewPatientService(mRepo, nil, nil, zerolog.Nop()).Create(ctx, 1, tt.patient)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestPatientService_Lookups(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockPatientRepository)
	mRepo.On("FindByID", ctx, int64(1), int64(9)).Return(&model.Patient{ID: 9, Name: "Lina"}, nil)
	mRepo.On("FindByID", ctx, int64(2), int64(9)).Return(nil, repository.ErrNotFound)
	mRepo.On("FindByName", ctx, int64(1), "Lina").Return(&model.Patient{ID: 9, Name: "Lina"}, nil)
	mRepo.On("List", ctx, int64(1)).Return([]model.Patient{{ID: 9}}, nil)
	svc := NewPatientService(mRepo, nil, nil, zerolog.Nop())

	p, err := svc.GetByID(ctx, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, "Lina", p.Name)

	_, err = svc.GetByID(ctx, 2, 9)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err = svc.GetByName(ctx, 1, "Lina")
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)

	_, err = svc.GetByName(ctx, 1, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPatientService_Update(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockPatientRepository)
	mRepo.On("Update", ctx, mock.MatchedBy(func(p *model.Patient) bool { return p.ID == 9 && p.UserID == 1 })).Return(nil).Once()
	mRepo.On("Update", ctx, mock.MatchedBy(func(p *model.Patient) bool { return p.ID == 10 })).Return(repository.ErrNotFound).Once()
	svc := NewPatientService(mRepo, nil, nil, zerolog.Nop())

	assert.NoError(t, svc.Update(ctx, 1, 9, validPatient()))
	assert.ErrorIs(t, svc.Update(ctx, 1, 10, validPatient()), ErrPatientNotFound)
	assert.ErrorIs(t, svc.Update(ctx, 1, 9, model.Patient{}), ErrInvalidInput)
	mRepo.AssertExpectations(t)
}

func TestPatientService_Delete(t *testing.T) {
	ctx := context.Background()
	docs := []model.Document{{ID: 1, Path: "9/1-a.pdf"}, {ID: 2, Path: "9/2-b.pdf"}}

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockPatientRepository, mDocs *repoMocks.MockDocumentRepository, mStore *storeMocks.MockStorage)
		wantErr    error
	}{
		{
			name: "removes row then files",
			setupMocks: func(mRepo *repoMocks.MockPatientRepository, mDocs *repoMocks.MockDocumentRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, int64(1), int64(9)).Return(&model.Patient{ID: 9}, nil)
				mDocs.On("ListByPatient", ctx, int64(9)).Return(docs, nil)
				mRepo.On("Delete", ctx, int64(1), int64(9)).Return(nil)
				mStore.On("Delete", ctx, "9/1-a.pdf").Return(nil)
				mStore.On("Delete", ctx, "9/2-b.pdf").Return(nil)
			},
		},
		{
			name: "file cleanup failure is not an error",
			setupMocks: func(mRepo *repoMocks.MockPatientRepository, mDocs *repoMocks.MockDocumentRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, int64(1), int64(9)).Return(&model.Patient{ID: 9}, nil)
				mDocs.On("ListByPatient", ctx, int64(9)).Return(docs, nil)
				mRepo.On("Delete", ctx, int64(1), int64(9)).Return(nil)
				mStore.On("Delete", ctx, "9/1-a.pdf").Return(errors.New("busy"))
				mStore.On("Delete", ctx, "9/2-b.pdf").Return(nil)
			},
		},
		{
			name: "unknown patient",
			setupMocks: func(mRepo *repoMocks.MockPatientRepository, mDocs *repoMocks.MockDocumentRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, int64(1), int64(9)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrPatientNotFound,
		},
		{
			name: "row delete fails - files kept",
			setupMocks: func(mRepo *repoMocks.MockPatientRepository, mDocs *repoMocks.MockDocumentRepository, mStore *storeMocks.MockStorage) {
				mRepo.On("FindByID", ctx, int64(1), int64(9)).Return(&model.Patient{ID: 9}, nil)
				mDocs.On("ListByPatient", ctx, int64(9)).Return(docs, nil)
				mRepo.On("Delete", ctx, int64(1), int64(9)).Return(errBoom)
			},
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockPatientRepository)
			mDocs := new(repoMocks.MockDocumentRepository)
			mStore := new(storeMocks.MockStorage)
			tt.setupMocks(mRepo, mDocs, mStore)

			err := NewPatientService(mRepo, mDocs, mStore, zerolog.Nop()).Delete(ctx, 1, 9)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
			mDocs.AssertExpectations(t)
			mStore.AssertExpectations(t)
		})
	}
}
