// Package service implements endpoint validation and endpoint-bound
// encrypted transmissions.
//
// Transmissions use ChaCha20-Poly1305 with a single shared transport key,
// deliberately separate from the per-category data keys: rotating data keys
// never invalidates in-flight transmissions. The destination endpoint is
// bound into the envelope twice, once in the clear for cheap mismatch
// detection and once as AEAD associated data so a tampered envelope fails
// authentication.
package service

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	cryptoService "github.com/allisson/privacycore/internal/crypto/service"
	"github.com/allisson/privacycore/internal/errors"
	"github.com/allisson/privacycore/internal/transport/domain"
)

// secureSchemes are the only accepted endpoint schemes.
var secureSchemes = map[string]domain.Protocol{
	"https": domain.ProtocolHTTPS,
	"wss":   domain.ProtocolWSS,
	"mqtts": domain.ProtocolMQTTTLS,
}

// TransportManager validates endpoints and produces endpoint-bound encrypted
// transmissions.
type TransportManager struct {
	aead     cipher.AEAD
	recorder auditService.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewTransportManager creates a transport manager from a 32-byte shared key.
func NewTransportManager(
	key []byte,
	recorder auditService.Recorder,
	logger *slog.Logger,
) (*TransportManager, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "invalid transport key")
	}

	return &TransportManager{
		aead:     aead,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// ValidateEndpoint reports whether the endpoint parses and uses a secure
// scheme. Malformed URLs are invalid, never an error.
func (m *TransportManager) ValidateEndpoint(ctx context.Context, endpoint string) bool {
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return false
	}
	_, ok := secureSchemes[strings.ToLower(parsed.Scheme)]
	return ok
}

// ValidateCertificate reports whether the endpoint's certificate chain is
// acceptable. Insecure schemes and loopback hosts are never acceptable, since
// loopback endpoints cannot present a valid production certificate.
func (m *TransportManager) ValidateCertificate(ctx context.Context, endpoint string) bool {
	if !m.ValidateEndpoint(ctx, endpoint) {
		m.failCertificate(endpoint, "insecure scheme")
		return false
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		m.failCertificate(endpoint, "malformed endpoint")
		return false
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "localhost" || hostname == "127.0.0.1" {
		m.failCertificate(endpoint, "loopback host")
		return false
	}
	return true
}

func (m *TransportManager) failCertificate(endpoint, reason string) {
	m.recorder.Record(auditDomain.EventCertificateFailed, map[string]any{
		"endpoint": endpoint,
		"reason":   reason,
	}, auditDomain.SeverityMedium)

	m.logger.Warn(
		"certificate validation failed",
		slog.String("endpoint", endpoint),
		slog.String("reason", reason),
	)
}

// EstablishSecureConnection validates the endpoint and returns a fresh
// connection descriptor. The endpoint is rejected before any network attempt,
// so no partial connection state ever exists.
func (m *TransportManager) EstablishSecureConnection(ctx context.Context, endpoint string) (domain.SecureConnection, error) {
	if !m.ValidateEndpoint(ctx, endpoint) {
		m.recorder.Record(auditDomain.EventEndpointRejected, map[string]any{
			"endpoint": endpoint,
		}, auditDomain.SeverityHigh)
		return domain.SecureConnection{}, domain.ErrInvalidEndpoint
	}

	certValid := m.ValidateCertificate(ctx, endpoint)

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return domain.SecureConnection{}, domain.ErrInvalidEndpoint
	}

	connection := domain.SecureConnection{
		Endpoint:             endpoint,
		Protocol:             secureSchemes[strings.ToLower(parsed.Scheme)],
		CertificateValidated: certValid,
		EncryptionStrength:   domain.TransportEncryptionStrength,
		LastVerified:         m.now(),
	}

	severity := auditDomain.SeverityLow
	if !certValid {
		severity = auditDomain.SeverityHigh
	}
	m.recorder.Record(auditDomain.EventConnectionSecured, map[string]any{
		"endpoint":              endpoint,
		"protocol":              string(connection.Protocol),
		"certificate_validated": certValid,
	}, severity)

	return connection, nil
}

// EncryptTransmission serializes data with date tagging, encrypts it bound to
// the endpoint, and packages everything into one base64 blob.
func (m *TransportManager) EncryptTransmission(ctx context.Context, data any, endpoint string) (string, error) {
	if data == nil {
		return "", errors.Wrap(errors.ErrInvalidInput, "transmission data is required")
	}
	if !m.ValidateEndpoint(ctx, endpoint) {
		m.recorder.Record(auditDomain.EventEndpointRejected, map[string]any{
			"endpoint": endpoint,
		}, auditDomain.SeverityHigh)
		return "", domain.ErrInvalidEndpoint
	}

	plaintext, err := cryptoService.EncodePayload(data)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, m.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := m.aead.Seal(nil, nonce, plaintext, []byte(endpoint))
	tagOffset := len(sealed) - chacha20poly1305.Overhead

	envelope := domain.TransmissionEnvelope{
		Endpoint:   endpoint,
		Ciphertext: sealed[:tagOffset],
		IV:         nonce,
		AuthTag:    sealed[tagOffset:],
		Timestamp:  m.now().UTC(),
	}

	blob, err := envelope.Encode()
	if err != nil {
		return "", err
	}

	m.recorder.Record(auditDomain.EventTransmitEncrypted, map[string]any{
		"endpoint": endpoint,
	}, auditDomain.SeverityLow)

	return blob, nil
}

// DecryptTransmission decodes the envelope, checks the endpoint binding, and
// only then attempts authenticated decryption.
func (m *TransportManager) DecryptTransmission(ctx context.Context, blob, endpoint string) (any, error) {
	envelope, err := domain.DecodeEnvelope(blob)
	if err != nil {
		return nil, m.failTransmission(err, endpoint, "invalid envelope")
	}

	// The mismatch check runs before any cryptographic work so the caller
	// learns about a wrong destination without burning a decryption attempt.
	if envelope.Endpoint != endpoint {
		return nil, m.failTransmission(domain.ErrEndpointMismatch, endpoint, "endpoint mismatch")
	}

	sealed := append(append([]byte{}, envelope.Ciphertext...), envelope.AuthTag...)
	plaintext, err := m.aead.Open(nil, envelope.IV, sealed, []byte(endpoint))
	if err != nil {
		return nil, m.failTransmission(domain.ErrTransmissionFailed, endpoint, "authentication failed")
	}

	payload, err := cryptoService.DecodePayload(plaintext)
	if err != nil {
		return nil, m.failTransmission(err, endpoint, "invalid payload")
	}

	m.recorder.Record(auditDomain.EventTransmitDecrypted, map[string]any{
		"endpoint": endpoint,
	}, auditDomain.SeverityLow)

	return payload, nil
}

func (m *TransportManager) failTransmission(err error, endpoint, reason string) error {
	m.recorder.Record(auditDomain.EventTransmitFailed, map[string]any{
		"endpoint": endpoint,
		"reason":   reason,
	}, auditDomain.SeverityHigh)

	m.logger.Warn(
		"transmission decryption failed",
		slog.String("endpoint", endpoint),
		slog.String("reason", reason),
	)

	return err
}
