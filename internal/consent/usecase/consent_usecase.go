package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/consent/domain"
	"github.com/allisson/privacycore/internal/errors"
)

// AutoApproveDecider grants every consent request. It is the default decider
// for single-tenant deployments where the caller is the data subject.
type AutoApproveDecider struct{}

// Decide always grants.
func (AutoApproveDecider) Decide(_ context.Context, _, _, _ string) bool {
	return true
}

// consentUseCase implements ConsentUseCase on top of a ConsentStore.
type consentUseCase struct {
	store    ConsentStore
	decider  ConsentDecider
	recorder auditService.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewConsentUseCase creates the consent use case with its dependencies.
func NewConsentUseCase(
	store ConsentStore,
	decider ConsentDecider,
	recorder auditService.Recorder,
	logger *slog.Logger,
) ConsentUseCase {
	return &consentUseCase{
		store:    store,
		decider:  decider,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestConsent resolves the request through the decider and appends the
// outcome to the user's ledger. Granted consents carry a one-year expiry and
// are always revocable.
func (u *consentUseCase) RequestConsent(ctx context.Context, userID, dataType, purpose string) (bool, error) {
	if err := validateConsentInput(userID, dataType); err != nil {
		return false, u.failConsent(err, "request", userID, dataType)
	}

	granted := u.decider.Decide(ctx, userID, dataType, purpose)
	now := u.now()

	record := domain.ConsentRecord{
		UserID:    userID,
		DataType:  dataType,
		Purpose:   purpose,
		Granted:   granted,
		Timestamp: now,
		Revocable: true,
	}
	if granted {
		expiresAt := now.Add(domain.DefaultConsentValidity)
		record.ExpiresAt = &expiresAt
	}
	u.store.Append(record)

	event := auditDomain.EventConsentGranted
	if !granted {
		event = auditDomain.EventConsentDenied
	}
	u.recorder.Record(event, map[string]any{
		"user_id":   userID,
		"data_type": dataType,
		"purpose":   purpose,
	}, auditDomain.SeverityLow)

	u.logger.Info(
		"consent request decided",
		slog.String("user_id", userID),
		slog.String("data_type", dataType),
		slog.Bool("granted", granted),
	)

	return granted, nil
}

// RevokeConsent appends a revocation record. History is never mutated: the
// revocation is a new entry with Granted=false, and the original grant stays
// in the ledger.
func (u *consentUseCase) RevokeConsent(ctx context.Context, userID, dataType string) error {
	if err := validateConsentInput(userID, dataType); err != nil {
		return u.failConsent(err, "revoke", userID, dataType)
	}

	latest, ok := u.store.Latest(userID, dataType)
	if !ok || !latest.Granted {
		return u.failConsent(domain.ErrNoGrantedConsent, "revoke", userID, dataType)
	}

	u.store.Append(domain.ConsentRecord{
		UserID:    userID,
		DataType:  dataType,
		Purpose:   latest.Purpose,
		Granted:   false,
		Timestamp: u.now(),
		Revocable: true,
	})

	u.recorder.Record(auditDomain.EventConsentRevoked, map[string]any{
		"user_id":   userID,
		"data_type": dataType,
	}, auditDomain.SeverityMedium)

	u.logger.Info(
		"consent revoked",
		slog.String("user_id", userID),
		slog.String("data_type", dataType),
	)

	return nil
}

// ConsentStatus returns the latest record for the pair, or nil when the user
// or data type has no history.
func (u *consentUseCase) ConsentStatus(ctx context.Context, userID, dataType string) (*domain.ConsentRecord, error) {
	if err := validateConsentInput(userID, dataType); err != nil {
		return nil, u.failConsent(err, "status", userID, dataType)
	}

	latest, ok := u.store.Latest(userID, dataType)
	if !ok {
		return nil, nil
	}
	return &latest, nil
}

// AllConsents returns the user's full history in insertion order. Unknown
// users yield an empty slice, not an error.
func (u *consentUseCase) AllConsents(ctx context.Context, userID string) ([]domain.ConsentRecord, error) {
	if strings.TrimSpace(userID) == "" {
		err := errors.Wrap(errors.ErrInvalidInput, "user id is required")
		return nil, u.failConsent(err, "history", userID, "")
	}
	return u.store.History(userID), nil
}

// failConsent records a high-severity audit event for a failed consent
// operation and returns the error unchanged.
func (u *consentUseCase) failConsent(err error, operation, userID, dataType string) error {
	u.recorder.Record(auditDomain.EventConsentFailed, map[string]any{
		"operation": operation,
		"user_id":   userID,
		"data_type": dataType,
		"error":     err.Error(),
	}, auditDomain.SeverityHigh)

	u.logger.Warn("consent operation failed",
		slog.String("operation", operation),
		slog.String("user_id", userID),
		slog.Any("error", err),
	)

	return err
}

func validateConsentInput(userID, dataType string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.Wrap(errors.ErrInvalidInput, "user id is required")
	}
	if strings.TrimSpace(dataType) == "" {
		return errors.Wrap(errors.ErrInvalidInput, "data type is required")
	}
	return nil
}
