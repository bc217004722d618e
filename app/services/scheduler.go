package services

import (
	"database/sql"
	"log"
	"time"
)

// SweepGuard is the process-wide guard shared by the scheduler and the
// request middleware, so both paths contend for the same hourly slot.
var SweepGuard = NewHourlyGuard()

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			// The guard limits the sweep to once per hour no matter how
			// often the ticker or request traffic asks for it.
			RunFeeSweep(db, SweepGuard)
		}
	}()
}
