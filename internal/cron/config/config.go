package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Inbox ingestion sweep, every ten minutes
	CronScheduleInboxIngestion string `env:"CRON_SCHEDULE_INBOX_INGESTION" envDefault:"0 */10 * * * *"`
}
