package pubsub

// Topic names, exactly as enumerated in spec.md §6.
const (
	TopicLoopback            = "w3g-router-loopback"
	TopicReplayResponse      = "id-replay-response"
	TopicResultResponse      = "id-result-response"
	TopicLobbyRequest        = "id-lobby-request"
	TopicLobbyStatsResponse  = "id-lobby-stats-response"
	TopicStatsRequest        = "id-stats-request"
	TopicLeaderboardRequest  = "id-leaderboard-request"
	TopicLeaderboardResponse = "id-leaderboard-response"
)
