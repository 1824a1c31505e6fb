package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/internal/repository"
	"agriplan/pkg/util"
)

// PlanEventHandler persists workflow events as notifications. Redeliveries
// are deduplicated through redis so a requeued message never produces a
// second notification row.
type PlanEventHandler struct {
	repo    *repository.NotificationRepository
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewPlanEventHandler(
	repo *repository.NotificationRepository,
	deduper *util.Deduper,
	logger *zap.Logger,
) *PlanEventHandler {
	return &PlanEventHandler{
		repo:    repo,
		deduper: deduper,
		logger:  logger,
	}
}

func (h *PlanEventHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var ev model.PlanEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		h.logger.Error("Failed to unmarshal PlanEvent", zap.Error(err))
		return err
	}

	h.logger.Info("Handling plan event",
		zap.String("record_type", ev.RecordType),
		zap.Int("record_id", ev.RecordID),
		zap.String("action", ev.Action),
		zap.String("status", ev.Status),
	)

	if h.deduper != nil && !h.deduper.AcquireOnce(ctx, ev.RecordType+"."+ev.Action+"."+ev.Status, ev.RecordID) {
		h.logger.Info("Duplicate plan event skipped",
			zap.String("record_type", ev.RecordType),
			zap.Int("record_id", ev.RecordID),
		)
		return nil
	}

	n := &model.Notification{
		RecordType: ev.RecordType,
		RecordID:   ev.RecordID,
		PlanID:     ev.PlanID,
		Action:     ev.Action,
		Status:     ev.Status,
		Message:    ev.Message,
	}
	if _, err := h.repo.Insert(ctx, n); err != nil {
		h.logger.Error("Failed to insert notification", zap.Error(err))
		return err
	}

	return nil
}
