package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"tripveda/internal/bookings"
	"tripveda/internal/shared/config"
)

// Service queues booking emails and runs the consumer workers that
// deliver them. It satisfies the bookings.Notifier interface.
type Service interface {
	SendBookingConfirmation(ctx context.Context, booking *bookings.Booking) error
	SendStatusUpdate(ctx context.Context, booking *bookings.Booking) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type emailNotificationService struct {
	cfg      *config.Config
	producer NotificationProducer
	consumer NotificationConsumer

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewService(cfg *config.Config) (Service, error) {
	if cfg.Email.SMTPHost == "" || cfg.Email.SMTPUsername == "" {
		return nil, fmt.Errorf("SMTP configuration is required: missing SMTP_HOST or SMTP_USERNAME")
	}

	emailService, err := NewSMTPEmailService(&SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    true,
	})
	if err != nil {
		return nil, err
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("📧 Notification service initialized (SMTP host: %s, Kafka topic: %s)",
		cfg.Email.SMTPHost, cfg.Kafka.NotificationTopic)

	return &emailNotificationService{
		cfg:      cfg,
		producer: producer,
		consumer: consumer,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

func (ens *emailNotificationService) Start(ctx context.Context) error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if ens.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	log.Printf("🚀 Starting notification service...")

	if err := ens.consumer.StartConsumers(ens.ctx, ens.cfg.Kafka.ConsumerWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	ens.isRunning = true
	log.Printf("✅ Notification service started successfully")
	return nil
}

func (ens *emailNotificationService) Stop() error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if !ens.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	log.Printf("🛑 Stopping notification service...")

	ens.cancel()

	if err := ens.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}
	if err := ens.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	ens.isRunning = false
	log.Printf("✅ Notification service stopped")
	return nil
}

func (ens *emailNotificationService) SendBookingConfirmation(ctx context.Context, booking *bookings.Booking) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingReceived).
		WithRecipient(booking.Email, booking.Name, booking.Phone).
		WithBookingContext(booking.ID).
		WithSubject(fmt.Sprintf("Booking received for %s (ref %s)", booking.TourTitle, booking.ShortRef())).
		WithTemplateData(bookingTemplateData(booking)).
		Build()

	return ens.producer.PublishNotification(ctx, notification)
}

func (ens *emailNotificationService) SendStatusUpdate(ctx context.Context, booking *bookings.Booking) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeStatusUpdate).
		WithRecipient(booking.Email, booking.Name, booking.Phone).
		WithBookingContext(booking.ID).
		WithSubject(fmt.Sprintf("Booking %s is now %s", booking.ShortRef(), booking.Status)).
		WithTemplateData(bookingTemplateData(booking)).
		Build()

	return ens.producer.PublishNotification(ctx, notification)
}

func (ens *emailNotificationService) HealthCheck(ctx context.Context) error {
	ens.mu.RLock()
	isRunning := ens.isRunning
	ens.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := ens.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}
	if err := ens.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}
	return nil
}

func bookingTemplateData(booking *bookings.Booking) map[string]interface{} {
	data := map[string]interface{}{
		"tour_title":  booking.TourTitle,
		"reference":   booking.ShortRef(),
		"status":      string(booking.Status),
		"total_price": booking.TotalPrice,
		"travel_date": booking.TravelDate.Format("02 Jan 2006"),
		"adults":      booking.Adults,
		"children":    booking.Children,
	}
	if booking.HotelDetails.Name != "" {
		data["hotel_name"] = booking.HotelDetails.Name
	}
	return data
}
