// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. Schedules use the six-field form with seconds.
//
// # Available Jobs
//
//  1. AutoAssignmentJob assigns the oldest pending delivery request to the
//     nearest free driver. Disabled unless a schedule is configured.
//  2. DeliveryMetricsJob refreshes the delivery_requests gauge per status.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(autoAssignHandler, countHandler, jobs.Schedules{
//		AutoAssign: "*/5 * * * * *",
//		Metrics:    "*/15 * * * * *",
//	}, metrics, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The assignment job treats "no pending request" and "no free driver" as
// normal outcomes and only logs real failures. Every outcome is counted in
// auto_assignments_total.
package jobs
