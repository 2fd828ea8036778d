// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. DeliveryTrackingJob - Runs every thirty seconds to poll courier tracking
// for orders out for delivery, record the ones reported in transit and
// complete the ones reported delivered
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(inDeliveryHandler, inTransitHandler, completeHandler, courierService, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A tracking failure for one parcel is logged and skipped; the rest of the
// cycle continues. Failed job starts will stop any already running jobs.
package jobs
