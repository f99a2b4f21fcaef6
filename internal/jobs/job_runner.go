package jobs

import (
	"context"
	"time"

	"g2p-portal-backend/internal/cache"
	"g2p-portal-backend/internal/config"
	"g2p-portal-backend/internal/logger"
	"g2p-portal-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store  *postgres.Store
	fields *cache.PartnerFieldCache
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, fields *cache.PartnerFieldCache, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		fields: fields,
		config: cfg,
	}
}

// Config returns the loaded configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// PurgeStaleDrafts removes drafts older than the configured age whose pair
// already has a live application
func (jr *JobRunner) PurgeStaleDrafts() {
	jr.runWithRecovery("PurgeStaleDrafts", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.StaleDraftAgeDays)
		purged, err := jr.store.DraftRepository.DeleteStaleWithLiveApplication(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge stale drafts", "error", err)
			return
		}

		logger.Info("Purged stale drafts", "count", purged, "cutoff", cutoff.Format(time.RFC3339))
	})
}

// RefreshPartnerFields reloads the registrant field allow-list from the
// database schema
func (jr *JobRunner) RefreshPartnerFields() {
	jr.runWithRecovery("RefreshPartnerFields", func() {
		ctx := context.Background()

		if err := jr.fields.Refresh(ctx); err != nil {
			logger.Error("Failed to refresh partner field cache", "error", err)
			return
		}

		logger.Info("Refreshed partner field cache")
	})
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.PurgeStaleDrafts()
	jr.RefreshPartnerFields()
}
