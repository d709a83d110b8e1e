package clients

import "time"

const (
	MAX_RETRIES         = 3
	RETRY_BACKOFF       = 250 * time.Millisecond
	USER_AGENT          = "tubemood/1.0 (+https://github.com/spacesedan/tubemood)"
	COMMENT_PAGE_SIZE   = 50
	COMMENT_THREAD_PART = "snippet"
)
