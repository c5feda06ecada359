package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/consent/domain"
	"github.com/allisson/privacycore/internal/errors"
)

// accessUseCase implements AccessUseCase on top of an AccessRequestStore.
type accessUseCase struct {
	store    AccessRequestStore
	recorder auditService.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewAccessUseCase creates the data access use case with its dependencies.
func NewAccessUseCase(
	store AccessRequestStore,
	recorder auditService.Recorder,
	logger *slog.Logger,
) AccessUseCase {
	return &accessUseCase{
		store:    store,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Request creates a pending access request.
func (u *accessUseCase) Request(
	ctx context.Context,
	requester string,
	dataTypes []string,
	purpose string,
) (domain.DataAccessRequest, error) {
	if strings.TrimSpace(requester) == "" {
		err := errors.Wrap(errors.ErrInvalidInput, "requester is required")
		return domain.DataAccessRequest{}, u.failAccess(err, "request", map[string]any{"requester": requester})
	}
	if len(dataTypes) == 0 {
		err := errors.Wrap(errors.ErrInvalidInput, "at least one data type is required")
		return domain.DataAccessRequest{}, u.failAccess(err, "request", map[string]any{"requester": requester})
	}

	request := domain.DataAccessRequest{
		ID:        uuid.Must(uuid.NewV7()),
		Requester: requester,
		DataTypes: dataTypes,
		Purpose:   purpose,
		CreatedAt: u.now(),
	}
	u.store.Save(request)

	u.recorder.Record(auditDomain.EventAccessRequested, map[string]any{
		"request_id": request.ID.String(),
		"requester":  requester,
		"data_types": dataTypes,
		"purpose":    purpose,
	}, auditDomain.SeverityMedium)

	u.logger.Info(
		"data access requested",
		slog.String("request_id", request.ID.String()),
		slog.String("requester", requester),
	)

	return request, nil
}

// Approve transitions a pending request to approved. The transition happens
// exactly once: a second decision attempt fails with ErrRequestAlreadyDecided
// regardless of direction.
func (u *accessUseCase) Approve(ctx context.Context, id uuid.UUID, approvedBy string) (domain.DataAccessRequest, error) {
	return u.decide(ctx, id, approvedBy, true)
}

// Deny transitions a pending request to denied, with the same exactly-once
// guarantee as Approve.
func (u *accessUseCase) Deny(ctx context.Context, id uuid.UUID, deniedBy string) (domain.DataAccessRequest, error) {
	return u.decide(ctx, id, deniedBy, false)
}

// Pending returns all undecided requests in creation order.
func (u *accessUseCase) Pending(ctx context.Context) ([]domain.DataAccessRequest, error) {
	return u.store.Pending(), nil
}

func (u *accessUseCase) decide(
	ctx context.Context,
	id uuid.UUID,
	decidedBy string,
	approved bool,
) (domain.DataAccessRequest, error) {
	operation := "approve"
	if !approved {
		operation = "deny"
	}

	if strings.TrimSpace(decidedBy) == "" {
		err := errors.Wrap(errors.ErrInvalidInput, "decided by is required")
		return domain.DataAccessRequest{}, u.failAccess(err, operation, map[string]any{"request_id": id.String()})
	}

	request, ok := u.store.Get(id)
	if !ok {
		return domain.DataAccessRequest{}, u.failAccess(domain.ErrRequestNotFound, operation, map[string]any{"request_id": id.String()})
	}
	if !request.Pending() {
		return domain.DataAccessRequest{}, u.failAccess(domain.ErrRequestAlreadyDecided, operation, map[string]any{"request_id": id.String()})
	}

	decidedAt := u.now()
	request.Approved = &approved
	request.DecidedBy = decidedBy
	request.DecidedAt = &decidedAt
	u.store.Save(request)

	event := auditDomain.EventAccessApproved
	if !approved {
		event = auditDomain.EventAccessDenied
	}
	u.recorder.Record(event, map[string]any{
		"request_id": request.ID.String(),
		"requester":  request.Requester,
		"decided_by": decidedBy,
	}, auditDomain.SeverityMedium)

	u.logger.Info(
		"data access request decided",
		slog.String("request_id", request.ID.String()),
		slog.Bool("approved", approved),
	)

	return request, nil
}

// failAccess records a high-severity audit event for a failed access request
// operation and returns the error unchanged.
func (u *accessUseCase) failAccess(err error, operation string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	details["operation"] = operation
	details["error"] = err.Error()
	u.recorder.Record(auditDomain.EventAccessFailed, details, auditDomain.SeverityHigh)

	u.logger.Warn("data access operation failed",
		slog.String("operation", operation),
		slog.Any("error", err),
	)

	return err
}
