package main

// Config holds all configuration from config.json.
type Config struct {
	Telegram      TelegramConfig      `json:"telegram"`
	Thresholds    ThresholdsConfig    `json:"thresholds"`
	Notifications NotificationsConfig `json:"notifications"`
	Intervals     IntervalsConfig     `json:"intervals"`
	Sampling      SamplingConfig      `json:"sampling"`
	Kill          KillConfig          `json:"kill"`
}

// TelegramConfig enables the Telegram alert sink. Leave the token empty to
// fall back to log-only notifications.
type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

// ThresholdsConfig carries optional startup overrides in MB. Zero means
// "use the computed default for this machine".
type ThresholdsConfig struct {
	UsageMB   float64 `json:"usage_mb"`
	FlaggedMB float64 `json:"flagged_mb"`
}

// NotificationsConfig holds the per-table notification switches.
type NotificationsConfig struct {
	Usage   TableNotifyConfig `json:"usage"`
	Flagged TableNotifyConfig `json:"flagged"`
}

// TableNotifyConfig is the switch for one result table.
type TableNotifyConfig struct {
	Enabled bool `json:"enabled"`
}

// IntervalsConfig drives the periodic loops.
type IntervalsConfig struct {
	ClassifySeconds int `json:"classify_seconds"`
	CacheTTLSeconds int `json:"cache_ttl_seconds"`
	StatusSeconds   int `json:"status_seconds"`
	DebounceMillis  int `json:"debounce_millis"`
}

// SamplingConfig bounds the background sampling workers.
type SamplingConfig struct {
	Workers int `json:"workers"`
}

// KillConfig bounds the terminate-and-wait workflow.
type KillConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
}
