// Package domain defines secure transport models.
package domain

import (
	"time"
)

// Protocol is the application protocol of a secure connection.
type Protocol string

// Protocols accepted on outbound connections.
const (
	ProtocolHTTPS   Protocol = "https"
	ProtocolWSS     Protocol = "wss"
	ProtocolMQTTTLS Protocol = "mqtt-tls"
)

// TransportEncryptionStrength is the symmetric key strength, in bits, of the
// transport cipher.
const TransportEncryptionStrength = 256

// SecureConnection is the per-call validation result for an endpoint. It is
// ephemeral and never cached; every establish call re-validates.
type SecureConnection struct {
	Endpoint             string    `json:"endpoint"`
	Protocol             Protocol  `json:"protocol"`
	CertificateValidated bool      `json:"certificate_validated"`
	EncryptionStrength   int       `json:"encryption_strength"`
	LastVerified         time.Time `json:"last_verified"`
}
