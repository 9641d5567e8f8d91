package consumer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/internal/repository"
	"go.uber.org/zap"
)

// packagePurchased is the billing system's message for an approved package
// purchase or registration.
type packagePurchased struct {
	PackageID     uint               `json:"package_id"`
	CustomerID    uint               `json:"customer_id"`
	TotalSessions int                `json:"total_sessions"`
	SessionType   models.SessionType `json:"session_type"`
	ValidFrom     time.Time          `json:"valid_from"`
	ValidTo       time.Time          `json:"valid_to"`
	Price         float64            `json:"price"`
}

type PackageConsumer struct {
	packages repository.PackageRepository
	logger   *zap.Logger
}

func NewPackageConsumer(packages repository.PackageRepository, logger *zap.Logger) *PackageConsumer {
	return &PackageConsumer{packages: packages, logger: logger}
}

// Start listens for purchase messages and upserts packages into the booking DB.
func (pc *PackageConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		pc.logger.Info("package consumer channel closed")
	}()
}

func (pc *PackageConsumer) handleMessage(msg amqp.Delivery) {
	var purchase packagePurchased
	if err := json.Unmarshal(msg.Body, &purchase); err != nil {
		pc.logger.Error("failed to unmarshal package purchase", zap.Error(err))
		msg.Nack(false, false)
		return
	}

	if purchase.TotalSessions < 1 || !purchase.ValidTo.After(purchase.ValidFrom) {
		pc.logger.Error("rejecting malformed package purchase",
			zap.Uint("package_id", purchase.PackageID),
			zap.Int("total_sessions", purchase.TotalSessions),
		)
		msg.Nack(false, false)
		return
	}

	pkg := &models.Package{
		ID:                purchase.PackageID,
		CustomerID:        purchase.CustomerID,
		TotalSessions:     purchase.TotalSessions,
		RemainingSessions: purchase.TotalSessions,
		SessionType:       purchase.SessionType,
		ValidFrom:         purchase.ValidFrom,
		ValidTo:           purchase.ValidTo,
		Price:             purchase.Price,
		Status:            models.PackageActive,
	}

	if err := pc.packages.Upsert(context.Background(), pkg); err != nil {
		pc.logger.Error("failed to upsert package",
			zap.Uint("package_id", purchase.PackageID),
			zap.Error(err),
		)
		msg.Nack(false, true) // requeue
		return
	}

	pc.logger.Info("package synced",
		zap.Uint("package_id", purchase.PackageID),
		zap.Uint("customer_id", purchase.CustomerID),
		zap.Int("total_sessions", purchase.TotalSessions),
	)
	msg.Ack(false)
}
