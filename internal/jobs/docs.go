// Package jobs provides scheduled background tasks for the kitchen board.
//
// Jobs are cron-based (github.com/robfig/cron/v3). Schedules accept the standard
// five fields, an optional leading seconds field, and descriptors such as
// "@hourly" or "@every 30s".
//
// # Available Jobs
//
// 1. RetentionSweepJob removes finished orders older than the retention period
// 2. SimulationJob creates a random order from a random channel (demo only)
//
// # Usage
//
//	manager := jobs.NewJobManager(logger,
//		jobs.NewRetentionSweepJob(sweepHandler, "@hourly", 24, logger),
//	)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A run that is still in progress when its next tick fires is skipped. StopAll
// waits for running jobs to finish.
package jobs
