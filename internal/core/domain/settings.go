package domain

// Settings is the process-wide configuration singleton. All durations are
// milliseconds on the wire.
type Settings struct {
	UserBlockingPeriod int64 `json:"userBlockingPeriod" bson:"userBlockingPeriod"`
	IdlePeriod         int64 `json:"idlePeriod" bson:"idlePeriod"`
	BackupInterval     int64 `json:"backupInterval" bson:"backupInterval"`
	BackupCount        int64 `json:"backupCount" bson:"backupCount"`
}

// DefaultSettings returns the values used before an admin ever saves the
// settings record.
func DefaultSettings() Settings {
	return Settings{
		UserBlockingPeriod: 86400000,  // 24h
		IdlePeriod:         1800000,   // 30m
		BackupInterval:     604800000, // 7d
		BackupCount:        5,
	}
}
