package jobs

import (
	"context"
	"log"
	"time"

	"librostock/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler manages background jobs
type Scheduler struct {
	scheduler    gocron.Scheduler
	inventorySvc services.InventoryService
}

// NewScheduler creates a scheduler with the low-stock alert job registered
func NewScheduler(inventorySvc services.InventoryService) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:    scheduler,
		inventorySvc: inventorySvc,
	}

	// Low stock alerts job - every 30 minutes
	_, err = scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(s.processLowStockAlerts),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Start starts the job scheduler
func (s *Scheduler) Start() {
	log.Printf("Starting background job scheduler")
	s.scheduler.Start()
}

// Stop stops the job scheduler
func (s *Scheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}

// processLowStockAlerts logs every book whose stock fell below its minimum
func (s *Scheduler) processLowStockAlerts() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := s.inventorySvc.LowStock(ctx)
	if err != nil {
		log.Printf("Failed to check low stock levels: %v", err)
		return err
	}

	for _, entry := range entries {
		log.Printf("ALERT: %s is below minimum stock (%d < %d)", entry.Nombre, entry.Stock, entry.StockMin)
	}

	if len(entries) == 0 {
		log.Printf("Low stock check completed, all books above minimum")
	} else {
		log.Printf("Low stock check completed, %d books below minimum", len(entries))
	}

	return nil
}
