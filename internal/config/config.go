package config

import "time"

type Config interface {
	EnvConfig
	OAuthConfig
	MailConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetDatabasePath() string
	GetLogPath() string
	GetLogLevel() string
	GetHeadless() bool
	GetEnv() string
}

type MailConfig interface {
	GetAPIEndpoint() string
	GetPollInterval() time.Duration
	GetOutlookWebURL() string
	GetOutlookConsumerWebURL() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Mail
}

func New() Config {
	return mainConfig{}
}
