// Package workerrepo persists the worker registry.
package workerrepo

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

type WorkerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

func fromDomain(w *worker.Worker) WorkerDTO {
	return WorkerDTO{
		ID:        w.ID().Bytes(),
		Name:      w.Name(),
		CreatedAt: w.CreatedAt().UTC(),
	}
}

func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return worker.RestoreWorker(id, dto.Name, dto.CreatedAt.UTC())
}
