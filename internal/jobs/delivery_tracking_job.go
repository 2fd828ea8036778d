package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DeliveryTrackingJob polls the courier for every order that is out for
// delivery, records parcels reported in transit and completes the ones
// reported as delivered.
// Runs every thirty seconds; the courier adapter caches tracking answers, so
// duplicate polls within a cycle are cheap.
type DeliveryTrackingJob struct {
	inDeliveryHandler queries.GetOrdersInDeliveryQueryHandler
	inTransitHandler  commands.MarkInTransitCommandHandler
	completeHandler   commands.CompleteDeliveryCommandHandler
	courier           ports.CourierService
	cron              *cron.Cron
	logger            *slog.Logger
}

// NewDeliveryTrackingJob creates a new job for polling courier tracking.
// Uses the in-delivery query to find parcels to poll, the transit handler to
// record moving parcels and the completion handler to finish delivered orders.
func NewDeliveryTrackingJob(
	inDeliveryHandler queries.GetOrdersInDeliveryQueryHandler,
	inTransitHandler commands.MarkInTransitCommandHandler,
	completeHandler commands.CompleteDeliveryCommandHandler,
	courier ports.CourierService,
	logger *slog.Logger,
) *DeliveryTrackingJob {
	return &DeliveryTrackingJob{
		inDeliveryHandler: inDeliveryHandler,
		inTransitHandler:  inTransitHandler,
		completeHandler:   completeHandler,
		courier:           courier,
		cron:              cron.New(cron.WithSeconds()),
		logger:            logger.With("component", "delivery_tracking_job"),
	}
}

// Start begins the tracking job to run every thirty seconds.
func (j *DeliveryTrackingJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.poll(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery tracking job started (running every 30 seconds)")
	return nil
}

// Stop stops the tracking job.
func (j *DeliveryTrackingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery tracking job stopped")
}

// poll runs one tracking cycle. Failures for one parcel never abort the
// cycle; the remaining parcels are still polled.
func (j *DeliveryTrackingJob) poll(ctx context.Context) {
	orders, err := j.inDeliveryHandler.Handle(ctx, queries.NewGetOrdersInDeliveryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery tracking job failed to list orders", "error", err)
		return
	}

	for _, inDelivery := range orders {
		status, trackErr := j.courier.GetTrackingStatus(ctx, inDelivery.TrackingNumber)
		if trackErr != nil {
			j.logger.ErrorContext(ctx, "Tracking lookup failed",
				"order_id", inDelivery.ID.String(),
				"tracking_number", inDelivery.TrackingNumber,
				"error", trackErr,
			)
			continue
		}

		switch status {
		case delivery.InTransit:
			j.markInTransit(ctx, inDelivery)
		case delivery.Delivered:
			j.complete(ctx, inDelivery)
		}
	}
}

// markInTransit records the courier reporting a parcel as moving. The handler
// treats an already recorded transit as a no-op, so repeated polls are safe.
func (j *DeliveryTrackingJob) markInTransit(ctx context.Context, inDelivery queries.GetOrdersInDeliveryQueryResponse) {
	cmd, err := commands.NewMarkInTransitCommand(inDelivery.ID)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build transit command",
			"order_id", inDelivery.ID.String(), "error", err)
		return
	}

	if err = j.inTransitHandler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Failed to record order in transit",
			"order_id", inDelivery.ID.String(), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order in transit", "order_id", inDelivery.ID.String())
}

func (j *DeliveryTrackingJob) complete(ctx context.Context, inDelivery queries.GetOrdersInDeliveryQueryResponse) {
	cmd, err := commands.NewCompleteDeliveryCommand(inDelivery.ID)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build completion command",
			"order_id", inDelivery.ID.String(), "error", err)
		return
	}

	if err = j.completeHandler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Failed to complete delivered order",
			"order_id", inDelivery.ID.String(), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order delivered", "order_id", inDelivery.ID.String())
}
