package publish

import (
	"github.com/rs/zerolog"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/record"
)

// WriteBack saves the normalized record over the source file when
// normalization changed it or an ID was assigned. It reports whether the
// file was written.
func WriteBack(log zerolog.Logger, pf *PreflightResult, sync *model.SyncSummary, dryRun bool) (bool, error) {
	if !sync.Changed && !pf.AssignedID {
		log.Info().Msg("record already normalized, file left untouched")
		return false, nil
	}
	if dryRun {
		log.Info().Bool("changed", sync.Changed).Msg("dry run, not writing record")
		return false, nil
	}
	if err := record.Save(pf.FilePath, pf.Record); err != nil {
		return false, err
	}
	log.Info().Str("file", pf.FilePath).Msg("normalized record written")
	return true, nil
}
