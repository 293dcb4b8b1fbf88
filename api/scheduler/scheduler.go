package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/gaurav-singhh/LocaLinkBackend/databases"
)

// pendingRecordTTL matches the store-level TTL index on pending signup
// verifications
const pendingRecordTTL = 24 * time.Hour

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron       *cron.Cron
	SVDB       databases.SignupVerificationDatabase
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(svDB databases.SignupVerificationDatabase) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		SVDB:       svDB,
		instanceID: uuid.New().String(),
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// sweep stale pending verifications hourly; the mongo TTL monitor does
	// the same server-side, this covers deployments where it lags or is off
	_, err := s.cron.AddFunc("0 * * * *", s.purgeStaleVerifications)
	if err != nil {
		zap.S().Errorw("failed to register verification purge job", "error", err)
	}

	s.cron.Start()
	zap.S().Infow("scheduler started", "instanceId", s.instanceID)
}

// Stop halts all scheduled jobs
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) purgeStaleVerifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-pendingRecordTTL)
	deleted, err := s.SVDB.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		zap.S().Errorw("failed to purge stale verifications", "error", err, "instanceId", s.instanceID)
		return
	}
	if deleted > 0 {
		zap.S().Infow("purged stale verifications", "count", deleted, "instanceId", s.instanceID)
	}
}
