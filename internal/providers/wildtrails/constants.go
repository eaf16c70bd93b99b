package wildtrails

import "time"

const (
	sourceName         = "wildtrails"
	defaultBaseURL     = "https://yosemite.org/wp-content/plugins/wildtrails/query.php"
	defaultReferer     = "https://yosemite.org/planning-your-wilderness-permit/"
	defaultHTTPTimeout = 30 * time.Second
	// statusMessage is the envelope status type the API uses for success.
	statusMessage = "message"
	dateKey       = "date"
	maxBodyBytes  = 16 << 20
)
