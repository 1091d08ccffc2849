package notification

// LatestRequest holds the query parameters of the latest feed.
type LatestRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}

// UnreadResponse reports the unread notification count.
type UnreadResponse struct {
	Unread int `json:"unread"`
}
