package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/repository"
	"pdam-be-svc/pkg/logger"
)

// ArrearsScheduler periodically records a recap of outstanding bills
type ArrearsScheduler struct {
	tagihanRepo      repository.TagihanRepository
	logSchedulerRepo repository.LogSchedullerRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
}

// NewArrearsScheduler creates a new arrears scheduler
func NewArrearsScheduler(
	tagihanRepo repository.TagihanRepository,
	logSchedulerRepo repository.LogSchedullerRepository,
	logger *logger.Logger,
	cronExpression string,
) *ArrearsScheduler {
	// Cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &ArrearsScheduler{
		tagihanRepo:      tagihanRepo,
		logSchedulerRepo: logSchedulerRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
	}
}

// Start initializes and starts all scheduled jobs
func (s *ArrearsScheduler) Start() error {
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling arrears recap job")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	_, err := s.cron.AddFunc(s.cronExpression, s.recapArrears)
	if err != nil {
		return fmt.Errorf("failed to schedule arrears recap job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Arrears scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *ArrearsScheduler) Stop() {
	s.logger.Info("Stopping arrears scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Arrears scheduler stopped successfully")
}

// recapArrears is the scheduled job that counts outstanding bills and records
// the recap as scheduler log rows
func (s *ArrearsScheduler) recapArrears() {
	schedullerCode := "MONTHLY_ARREARS_RECAP"
	docID := uuid.New().String()

	s.logScheduler(schedullerCode, docID, "Starting monthly arrears recap", "START")
	s.logger.Info("Starting monthly arrears recap...")

	count, err := s.tagihanRepo.CountByStatus(models.StatusBelumBayar)
	if err != nil {
		s.logScheduler(schedullerCode, docID, fmt.Sprintf("Failed to count outstanding bills: %v", err), "FAILED")
		s.logger.WithError(err).Error("Failed to count outstanding bills")
		return
	}

	total, err := s.tagihanRepo.SumTotalByStatus(models.StatusBelumBayar)
	if err != nil {
		s.logScheduler(schedullerCode, docID, fmt.Sprintf("Failed to sum outstanding bills: %v", err), "FAILED")
		s.logger.WithError(err).Error("Failed to sum outstanding bills")
		return
	}

	message := fmt.Sprintf("Arrears recap: %d outstanding bills totaling %d", count, total)
	s.logScheduler(schedullerCode, docID, message, "SUCCESS")

	s.logger.WithFields(map[string]interface{}{
		"outstanding_count": count,
		"outstanding_total": total,
	}).Info("Monthly arrears recap completed")
}

// logScheduler creates a new log entry in the database
func (s *ArrearsScheduler) logScheduler(schedullerCode, documentID, message, status string) {
	entry := &models.LogScheduller{
		DocumentID:       documentID,
		SchedullerCode:   schedullerCode,
		Message:          message,
		StatusScheduller: status,
		CreatedAt:        time.Now(),
	}

	if err := s.logSchedulerRepo.Create(entry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
