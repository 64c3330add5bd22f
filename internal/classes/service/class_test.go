package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"classbook/internal/classes/repository"
	"classbook/internal/classes/validator"
	"classbook/pkg/config"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/logger"
	"classbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingClassRepository struct {
	err error
}

func (f *failingClassRepository) FindByID(ctx context.Context, id int64) (*model.Class, error) {
	return nil, f.err
}

func (f *failingClassRepository) FindAll(ctx context.Context) ([]*model.Class, error) {
	return nil, f.err
}

func (f *failingClassRepository) Save(ctx context.Context, class *model.Class) error {
	return f.err
}

func newTestService(repo repository.ClassRepository) ClassService {
	log := logger.NewNop()
	return NewClassService(repo, validator.NewClassValidator(log), &config.Config{Log: log})
}

func TestClassService_CreateAndGet(t *testing.T) {
	svc := newTestService(repository.NewMemoryClassRepository())
	ctx := context.Background()

	class := &model.Class{
		Name:      "  Morning   Yoga ",
		StartDate: model.NewDate(2024, time.January, 1),
		EndDate:   model.NewDate(2024, time.January, 31),
		Capacity:  20,
	}
	require.NoError(t, svc.Create(ctx, class))
	assert.Equal(t, int64(1), class.ID)
	assert.Equal(t, "Morning Yoga", class.Name)

	found, err := svc.GetByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, class.StartDate, found.StartDate)
	assert.Equal(t, class.EndDate, found.EndDate)
}

func TestClassService_CreateIgnoresClientID(t *testing.T) {
	svc := newTestService(repository.NewMemoryClassRepository())

	class := &model.Class{
		ID:        77,
		Name:      "Spin",
		StartDate: model.NewDate(2024, time.March, 1),
		EndDate:   model.NewDate(2024, time.March, 2),
		Capacity:  8,
	}
	require.NoError(t, svc.Create(context.Background(), class))
	assert.Equal(t, int64(1), class.ID)
}

func TestClassService_CreateValidation(t *testing.T) {
	svc := newTestService(repository.NewMemoryClassRepository())

	err := svc.Create(context.Background(), &model.Class{
		Name:      "Spin",
		StartDate: model.NewDate(2024, time.March, 10),
		EndDate:   model.NewDate(2024, time.March, 1),
		Capacity:  8,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "got %v", err)
}

func TestClassService_GetByIDNotFound(t *testing.T) {
	svc := newTestService(repository.NewMemoryClassRepository())

	_, err := svc.GetByID(context.Background(), 42)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound), "got %v", err)
}

func TestClassService_StoreFailures(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := newTestService(&failingClassRepository{err: storeErr})
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.List(ctx)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))

	err = svc.Create(ctx, &model.Class{
		Name:      "Spin",
		StartDate: model.NewDate(2024, time.March, 1),
		EndDate:   model.NewDate(2024, time.March, 2),
		Capacity:  8,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}
