package domain

import "time"

const (
	MinBackupMinutes     = 1
	MaxBackupMinutes     = 60
	DefaultBackupMinutes = 10
)

// ClampBackupMinutes is applied at every entry point, including loads of
// previously persisted records.
func ClampBackupMinutes(m int) int {
	return clamp(m, MinBackupMinutes, MaxBackupMinutes)
}

func BackupOffset(m int) time.Duration {
	return time.Duration(ClampBackupMinutes(m)) * time.Minute
}
