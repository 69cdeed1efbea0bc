package git

import (
	"strconv"
	"strings"
	"time"
)

// ParseActionedDetails builds author or committer details from the raw
// %an/%ae/%at style fields. It returns nil when the name or timestamp is
// blank, or when the timestamp is not a whole number of seconds.
func ParseActionedDetails(name, email, unixSeconds string) *ActionedDetails {
	name = strings.TrimSpace(name)
	unixSeconds = strings.TrimSpace(unixSeconds)
	if name == "" || unixSeconds == "" {
		return nil
	}

	secs, err := strconv.ParseInt(unixSeconds, 10, 64)
	if err != nil {
		return nil
	}

	return &ActionedDetails{
		Name:  name,
		Email: strings.TrimSpace(email),
		Date:  time.Unix(secs, 0),
	}
}

// parseUnixTime parses a %ct value, rejecting empty, zero and negative input.
func parseUnixTime(s string) (time.Time, bool) {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
