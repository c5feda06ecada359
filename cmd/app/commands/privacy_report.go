package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	auditService "github.com/allisson/privacycore/internal/audit/service"
)

// RunPrivacyReport computes the privacy compliance report over the last 24
// hours and prints it.
func RunPrivacyReport(
	reportGenerator *auditService.ReportGenerator,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("generating privacy report")

	report := reportGenerator.PrivacyReport()

	// Output result based on format
	if format == "json" {
		encoder := json.NewEncoder(writer)
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		fmt.Fprintln(writer, "Privacy Report")
		fmt.Fprintf(writer, "Generated at:          %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(writer, "Window:                %s\n", report.Window)
		fmt.Fprintf(writer, "Data processed:        %d\n", report.DataProcessed)
		fmt.Fprintf(writer, "Local processing rate: %.1f%%\n", report.LocalProcessingRate)
		fmt.Fprintf(writer, "Consent compliance:    %.1f%%\n", report.ConsentCompliance)
		fmt.Fprintf(writer, "Encryption coverage:   %.1f%%\n", report.EncryptionCoverage)
	}

	logger.Info("privacy report generated",
		slog.Int("data_processed", report.DataProcessed),
		slog.Float64("consent_compliance", report.ConsentCompliance),
	)
	return nil
}
