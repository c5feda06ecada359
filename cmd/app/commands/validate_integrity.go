package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cryptoUseCase "github.com/allisson/privacycore/internal/crypto/usecase"
)

// RunValidateIntegrity runs the encryption self-test against every category
// key. Returns an error when the self-test fails so the process exits
// non-zero.
func RunValidateIntegrity(
	ctx context.Context,
	encryptionUseCase cryptoUseCase.EncryptionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("validating encryption integrity")

	valid := encryptionUseCase.ValidateIntegrity(ctx)

	// Output result based on format
	if format == "json" {
		encoder := json.NewEncoder(writer)
		if err := encoder.Encode(map[string]any{"valid": valid}); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else if valid {
		fmt.Fprintln(writer, "Encryption integrity check passed")
	} else {
		fmt.Fprintln(writer, "Encryption integrity check FAILED")
	}

	if !valid {
		return fmt.Errorf("encryption integrity check failed")
	}

	logger.Info("encryption integrity validated")
	return nil
}
