package postgresql

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/audit"
	"github.com/staffhub-hr/leave-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

// Record implements audit.Repository.
func (r *auditRepositoryImpl) Record(ctx context.Context, event audit.Event) error {
	q := GetQuerier(ctx, r.db)

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_events (id, kind, subject_id, payload, recorded_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err = q.Exec(ctx, query, event.ID, event.Kind, event.SubjectID, payload)
	return err
}
