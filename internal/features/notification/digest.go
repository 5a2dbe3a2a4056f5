package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-support/internal/config"
	"go-support/internal/features/channel"
	"go-support/internal/features/customer"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DigestService batches unsent notifications for customers who opted
// out of immediate delivery and sends them as one combined message per
// customer on a schedule.
type DigestService interface {
	Start(ctx context.Context) error
	Stop() error
	RunDigest(ctx context.Context, frequency customer.NotificationFrequency) error
}

type DigestServiceImpl struct {
	Repo      NotificationRepository
	Customers customer.CustomerService
	Channels  channel.ChannelService
	Config    *config.Config
	Logger    *zap.Logger

	scheduler *cron.Cron
}

func NewDigestService(
	repo NotificationRepository,
	customers customer.CustomerService,
	channels channel.ChannelService,
	cfg *config.Config,
	logger *zap.Logger,
) DigestService {
	return &DigestServiceImpl{
		Repo:      repo,
		Customers: customers,
		Channels:  channels,
		Config:    cfg,
		Logger:    logger,
	}
}

func (s *DigestServiceImpl) Start(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.Config.DigestSchedule); err != nil {
		return fmt.Errorf("invalid digest schedule: %w", err)
	}

	s.scheduler = cron.New()

	s.scheduler.AddFunc(s.Config.DigestSchedule, func() {
		if err := s.RunDigest(context.Background(), customer.FrequencyDaily); err != nil {
			s.Logger.Error("daily digest run failed", zap.Error(err))
		}
	})
	// weekly batch goes out Monday mornings
	s.scheduler.AddFunc("0 8 * * 1", func() {
		if err := s.RunDigest(context.Background(), customer.FrequencyWeekly); err != nil {
			s.Logger.Error("weekly digest run failed", zap.Error(err))
		}
	})

	s.scheduler.Start()
	s.Logger.Info("notification digest scheduler started",
		zap.String("daily_schedule", s.Config.DigestSchedule))
	return nil
}

func (s *DigestServiceImpl) Stop() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}

// RunDigest collects unsent notifications grouped by customer, sends one
// combined message to each customer whose frequency matches, and marks
// the batch sent.
func (s *DigestServiceImpl) RunDigest(ctx context.Context, frequency customer.NotificationFrequency) error {
	unsent, err := s.Repo.ListUnsent(ctx)
	if err != nil {
		return err
	}

	byCustomer := make(map[primitive.ObjectID][]Notification)
	for _, n := range unsent {
		byCustomer[n.CustomerID] = append(byCustomer[n.CustomerID], n)
	}

	for customerID, batch := range byCustomer {
		cust, err := s.Customers.Get(ctx, customerID.Hex())
		if err != nil {
			continue
		}
		if cust.Preferences.NotificationFrequency != frequency {
			continue
		}
		if len(cust.ContactMethods) == 0 {
			continue
		}

		contact := preferredContact(cust.ContactMethods)
		ch, err := s.Channels.FindBy(ctx, "type", string(contact.Type))
		if err != nil || ch == nil || ch.Config == nil {
			continue
		}

		lines := make([]string, 0, len(batch))
		ids := make([]primitive.ObjectID, 0, len(batch))
		for _, n := range batch {
			lines = append(lines, n.Message)
			ids = append(ids, n.ID)
		}
		digest := fmt.Sprintf("You have %d updates:\n%s", len(lines), strings.Join(lines, "\n"))

		if err := ch.Config.Notify(ctx, contact.Value, digest); err != nil {
			s.Logger.Warn("digest delivery failed",
				zap.String("customer_id", customerID.Hex()),
				zap.Error(err))
			continue
		}

		if err := s.Repo.MarkSent(ctx, ids); err != nil {
			return err
		}
		s.Logger.Info("digest sent",
			zap.String("customer_id", customerID.Hex()),
			zap.Int("count", len(ids)),
			zap.Time("at", time.Now()))
	}

	return nil
}
