package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	auditService "github.com/allisson/privacycore/internal/audit/service"
)

// RunDetectThreats evaluates the threat heuristics over the security event
// log and prints the findings.
func RunDetectThreats(
	threatDetector *auditService.ThreatDetector,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("running threat detection")

	threats := threatDetector.Detect()

	// Output result based on format
	if format == "json" {
		encoder := json.NewEncoder(writer)
		if err := encoder.Encode(threats); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else if len(threats) == 0 {
		fmt.Fprintln(writer, "No threats detected in the last 24 hours")
	} else {
		fmt.Fprintf(writer, "Detected %d threat(s):\n", len(threats))
		for _, threat := range threats {
			fmt.Fprintf(writer, "- [%s] %s: %s (%d events)\n",
				threat.Severity, threat.Type, threat.Description, threat.EventCount)
			for _, action := range threat.RecommendedActions {
				fmt.Fprintf(writer, "    recommended: %s\n", action)
			}
		}
	}

	logger.Info("threat detection completed", slog.Int("threats", len(threats)))
	return nil
}
