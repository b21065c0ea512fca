// Package jobs hosts the background schedules that run beside the API.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/chamodh/ricemill-api/internal/infrastructure/postgres"
)

// TotalsIntegrityJob periodically cross-checks the stock totals ledger
// against batch production and logs every mismatch. It never repairs data;
// drift here means a bug to investigate, not state to paper over.
type TotalsIntegrityJob struct {
	reader *postgres.IntegrityReader
	log    zerolog.Logger
}

func NewTotalsIntegrityJob(reader *postgres.IntegrityReader, log zerolog.Logger) *TotalsIntegrityJob {
	return &TotalsIntegrityJob{reader: reader, log: log.With().Str("job", "totals_integrity").Logger()}
}

// Register adds the job to the scheduler under the given cron spec.
func (j *TotalsIntegrityJob) Register(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, j.Run)
	return err
}

// Run executes one check. Called by the scheduler; safe to call directly.
func (j *TotalsIntegrityJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	started := time.Now()
	drifts, err := j.reader.FindTotalsDrift(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("totals integrity check failed")
		return
	}
	for _, d := range drifts {
		j.log.Warn().
			Str("owner_id", d.OwnerID).
			Str("business_id", d.BusinessID).
			Str("product_key", d.ProductKey).
			Str("paddy_type_slug", d.PaddyTypeSlug).
			Str("ledger_kg", d.LedgerKg.String()).
			Str("produced_kg", d.ProducedKg.String()).
			Msg("stock totals drift detected")
	}
	j.log.Info().
		Int("drift_rows", len(drifts)).
		Dur("elapsed", time.Since(started)).
		Msg("totals integrity check completed")
}
