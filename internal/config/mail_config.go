package config

import (
	"strings"
	"time"
)

const (
	apiEndpointVar           = "API_ENDPOINT"
	pollIntervalVar          = "POLL_INTERVAL"
	outlookWebURLVar         = "OUTLOOK_WEB_URL"
	outlookConsumerWebURLVar = "OUTLOOK_CONSUMER_WEB_URL"
)

type Mail struct{}

var _ MailConfig = Mail{}

func (Mail) GetAPIEndpoint() string {
	return strings.TrimRight(GetEnv(apiEndpointVar, "https://outlook.office.com/api/v2.0"), "/")
}

// GetPollInterval parses POLL_INTERVAL as a time.Duration, falling back to 5 minutes.
func (Mail) GetPollInterval() time.Duration {
	interval, err := time.ParseDuration(GetEnv(pollIntervalVar, "5m"))
	if err != nil || interval <= 0 {
		return 5 * time.Minute
	}
	return interval
}

func (Mail) GetOutlookWebURL() string {
	return GetEnv(outlookWebURLVar, "https://outlook.office.com/mail/")
}

func (Mail) GetOutlookConsumerWebURL() string {
	return GetEnv(outlookConsumerWebURLVar, "https://outlook.live.com/mail/")
}
