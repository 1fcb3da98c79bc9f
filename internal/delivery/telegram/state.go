package telegram

// Cache keys for per-user conversation state and accumulated answers.
const (
	UserStateKey = "user_state:%d"
	UserDataKey  = "user_data:%d"
)

const (
	StateIdle = 0

	// /subscribe states
	StateWaitingSubscribeAsset       = 1
	StateWaitingSubscribeDirection   = 2
	StateWaitingSubscribeThreshold   = 3
	StateWaitingUnsubscribeDirection = 4

	// /chart states
	StateWaitingChartAsset = 10
	StateWaitingChartKind  = 11
)
