package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

// 監査ログの参照（書き込みは各usecaseのTx内で行う）
type AuditUsecase struct {
	logs repo.AuditLogRepository
	log  *slog.Logger
}

func NewAuditUsecase(logs repo.AuditLogRepository, log *slog.Logger) *AuditUsecase {
	return &AuditUsecase{logs: logs, log: log}
}

// 空文字・nilは条件にしない
type AuditLogQuery struct {
	Action       string
	ResourceType string
	ResourceID   *int64
	Limit        int
}

// List returns audit entries, newest first.
func (u *AuditUsecase) List(ctx context.Context, q AuditLogQuery) ([]model.AuditLog, error) {
	filter, err := auditFilterOf(q)
	if err != nil {
		return []model.AuditLog{}, err
	}

	items, err := u.logs.List(ctx, filter)
	if err != nil {
		return []model.AuditLog{}, storeError(ctx, u.log, "list audit logs", err)
	}
	return items, nil
}

func auditFilterOf(q AuditLogQuery) (repo.AuditLogFilter, error) {
	var f repo.AuditLogFilter

	if q.Action != "" {
		a := model.AuditAction(q.Action)
		switch a {
		case model.AuditActionUpdateOrder, model.AuditActionCancelOrder, model.AuditActionAdjustStock:
		default:
			return f, validationError(fmt.Sprintf("unknown action %q", q.Action))
		}
		f.Action = &a
	}

	if q.ResourceType != "" {
		rt := model.AuditResourceType(q.ResourceType)
		switch rt {
		case model.AuditResourceOrder, model.AuditResourceProduct:
		default:
			return f, validationError(fmt.Sprintf("unknown resource_type %q", q.ResourceType))
		}
		f.ResourceType = &rt
	}

	if q.ResourceID != nil {
		if *q.ResourceID <= 0 {
			return f, validationError("invalid resource_id")
		}
		f.ResourceID = q.ResourceID
	}

	if q.Limit < 0 {
		return f, validationError("invalid limit")
	}
	f.Limit = q.Limit
	return f, nil
}
