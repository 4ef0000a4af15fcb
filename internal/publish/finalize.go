package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Finalize refreshes planner statistics after a publish.
func Finalize(ctx context.Context, store Store, log zerolog.Logger) error {
	start := time.Now()
	if err := store.Analyze(ctx); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.Info().Dur("duration", time.Since(start)).Msg("ANALYZE complete")
	return nil
}
