package scheduler

import (
	"context"
	"sync"
	"time"

	billingapp "github.com/gestor-erp/backend/internal/application/billing"
	"github.com/gestor-erp/backend/internal/domain/identity"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Config holds the billing scheduler settings
type Config struct {
	// RunHour and RunMinute give the local time of the daily run
	RunHour   int
	RunMinute int

	// CheckInterval is how often the scheduler wakes up to check the clock
	CheckInterval time.Duration
}

// DefaultConfig returns the default billing scheduler configuration
func DefaultConfig() Config {
	return Config{
		RunHour:       3,
		RunMinute:     0,
		CheckInterval: time.Minute,
	}
}

// BillingScheduler triggers the monthly billing run for every company once a
// day. The run itself is idempotent per competency, so firing it daily only
// picks up contracts created since the last run.
type BillingScheduler struct {
	config    Config
	runs      *billingapp.BillingRunService
	companies identity.CompanyRepository
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewBillingScheduler creates a new BillingScheduler
func NewBillingScheduler(config Config, runs *billingapp.BillingRunService, companies identity.CompanyRepository, logger *zap.Logger) *BillingScheduler {
	return &BillingScheduler{
		config:    config,
		runs:      runs,
		companies: companies,
		logger:    logger,
	}
}

// Start launches the scheduling loop
func (s *BillingScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("billing scheduler started",
		zap.Int("run_hour", s.config.RunHour),
		zap.Int("run_minute", s.config.RunMinute),
	)
}

// Stop halts the scheduling loop and waits for an in-flight run to finish
func (s *BillingScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("billing scheduler stopped")
}

func (s *BillingScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !s.due(now) {
				continue
			}
			s.RunNow(ctx)
		}
	}
}

// due reports whether the daily run time has passed and today's run is still
// pending
func (s *BillingScheduler) due(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := now.Format("2006-01-02")
	if s.lastRunDate == today {
		return false
	}
	if now.Hour() < s.config.RunHour {
		return false
	}
	if now.Hour() == s.config.RunHour && now.Minute() < s.config.RunMinute {
		return false
	}
	s.lastRunDate = today
	return true
}

// RunNow triggers the billing run for every company immediately. Errors per
// company are logged and do not stop the remaining companies.
func (s *BillingScheduler) RunNow(ctx context.Context) {
	companies, err := s.companies.FindAll(ctx, shared.Filter{Page: 1, PageSize: 1000}.Normalize())
	if err != nil {
		s.logger.Error("billing scheduler: list companies", zap.Error(err))
		return
	}

	for i := range companies {
		company := &companies[i]
		result, err := s.runs.Run(ctx, company.ID, billingapp.BillingRunRequest{})
		if err != nil {
			s.logger.Error("billing scheduler: run failed",
				zap.String("company_id", company.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if result.Created > 0 {
			s.logger.Info("billing scheduler: receivables issued",
				zap.String("company_id", company.ID.String()),
				zap.String("competency", result.Competency),
				zap.Int("created", result.Created),
				zap.Int("existing", result.Existing),
			)
		}
	}
}
