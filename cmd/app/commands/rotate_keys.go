package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cryptoUseCase "github.com/allisson/privacycore/internal/crypto/usecase"
)

// RunRotateKeys rotates every category encryption key. The previous keys are
// archived so existing records remain decryptable.
//
// Rotation recommended on a regular schedule or when suspecting key
// compromise.
func RunRotateKeys(
	ctx context.Context,
	encryptionUseCase cryptoUseCase.EncryptionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("rotating encryption keys")

	rotated, err := encryptionUseCase.RotateKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to rotate keys: %w", err)
	}

	// Output result based on format
	if format == "json" {
		encoder := json.NewEncoder(writer)
		if err := encoder.Encode(map[string]any{"rotated_categories": rotated}); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		fmt.Fprintf(writer, "Rotated %d category keys\n", rotated)
	}

	logger.Info("encryption keys rotated", slog.Int("rotated_categories", rotated))
	return nil
}
