package common

const (
	KEY_LATEST_NEWS = "latest_news"
)
