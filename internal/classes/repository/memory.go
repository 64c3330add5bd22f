package repository

import (
	"context"
	"sort"
	"sync"

	classeserrors "classbook/internal/classes/errors"
	"classbook/pkg/model"
)

type memoryClassRepository struct {
	mu      sync.RWMutex
	classes map[int64]model.Class
	lastID  int64
}

func NewMemoryClassRepository() ClassRepository {
	return &memoryClassRepository{
		classes: make(map[int64]model.Class),
	}
}

func (r *memoryClassRepository) FindByID(ctx context.Context, id int64) (*model.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	class, ok := r.classes[id]
	if !ok {
		return nil, classeserrors.ErrNotFound
	}
	return &class, nil
}

func (r *memoryClassRepository) FindAll(ctx context.Context) ([]*model.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]*model.Class, 0, len(r.classes))
	for _, c := range r.classes {
		class := c
		classes = append(classes, &class)
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].StartDate == classes[j].StartDate {
			return classes[i].ID < classes[j].ID
		}
		return classes[i].StartDate.Before(classes[j].StartDate)
	})

	return classes, nil
}

func (r *memoryClassRepository) Save(ctx context.Context, class *model.Class) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if class.ID == 0 {
		r.lastID++
		class.ID = r.lastID
	} else if _, ok := r.classes[class.ID]; !ok {
		return classeserrors.ErrNotFound
	}

	r.classes[class.ID] = *class
	return nil
}
