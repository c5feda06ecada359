package usecase

import (
	"context"
	"time"

	"github.com/allisson/privacycore/internal/crypto/domain"
	"github.com/allisson/privacycore/internal/metrics"
)

const metricsDomain = "crypto"

// metricsDecorator wraps an EncryptionUseCase and records operation counts
// and durations for every call.
type metricsDecorator struct {
	next            EncryptionUseCase
	businessMetrics metrics.BusinessMetrics
}

// NewMetricsDecorator wraps the given use case with business metrics
// instrumentation. Returns the use case unchanged when metrics are disabled.
func NewMetricsDecorator(next EncryptionUseCase, businessMetrics metrics.BusinessMetrics) EncryptionUseCase {
	if businessMetrics == nil {
		return next
	}
	return &metricsDecorator{next: next, businessMetrics: businessMetrics}
}

func (d *metricsDecorator) Encrypt(
	ctx context.Context,
	payload any,
	dataType string,
) (domain.EncryptedRecord, error) {
	start := time.Now()
	record, err := d.next.Encrypt(ctx, payload, dataType)
	d.record(ctx, "encrypt", start, err)
	return record, err
}

func (d *metricsDecorator) Decrypt(
	ctx context.Context,
	record domain.EncryptedRecord,
) (any, string, error) {
	start := time.Now()
	payload, dataType, err := d.next.Decrypt(ctx, record)
	d.record(ctx, "decrypt", start, err)
	return payload, dataType, err
}

func (d *metricsDecorator) RotateKeys(ctx context.Context) (int, error) {
	start := time.Now()
	rotated, err := d.next.RotateKeys(ctx)
	d.record(ctx, "rotate_keys", start, err)
	return rotated, err
}

func (d *metricsDecorator) ValidateIntegrity(ctx context.Context) bool {
	start := time.Now()
	valid := d.next.ValidateIntegrity(ctx)

	var err error
	if !valid {
		err = domain.ErrDecryptionFailed
	}
	d.record(ctx, "validate_integrity", start, err)
	return valid
}

// record emits the counter and duration instruments with a success/error
// status derived from err.
func (d *metricsDecorator) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.businessMetrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.businessMetrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}
