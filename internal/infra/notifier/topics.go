package notifier

const (
	TopicReminderSchedule     = "alarm.reminder.schedule"
	TopicReminderCancel       = "alarm.reminder.cancel"
	TopicReminderDelivered    = "alarm.reminder.delivered"
	TopicReminderAcknowledged = "alarm.reminder.acknowledged"
)
