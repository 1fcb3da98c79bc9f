package dto

// AlphaVantageNewsResponse mirrors the NEWS_SENTIMENT feed.
type AlphaVantageNewsResponse struct {
	Feed []AlphaVantageArticle `json:"feed"`
}

type AlphaVantageArticle struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	TimePublished string `json:"time_published"` // 20060102T150405
	Source        string `json:"source"`
}
