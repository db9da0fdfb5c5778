package market

// NewsItem is a headline from the backend news feed.
type NewsItem struct {
	ID             int64  `json:"id,omitempty"`
	Title          string `json:"title"`
	Link           string `json:"link"`
	Description    string `json:"description"`
	PubDate        string `json:"pubDate"`
	IsAISummarized bool   `json:"isAiSummarized"`
	AISummary      string `json:"aiSummary,omitempty"`
}

// Keyword is a user-managed AI analysis keyword.
type Keyword struct {
	Keyword   string `json:"keyword"`
	CreatedAt string `json:"createdAt,omitempty"`
}
