package dto

// PublishIngestMessage triggers an index sync; ReplyRoom is the chat
// room that should receive progress events.
type PublishIngestMessage struct {
	ReplyRoom string `json:"reply_room"`
}

type LoadingProgressEvent struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type UpdateProgressEvent struct {
	Stage string `json:"stage"`
}

type UpdateCompleteEvent struct {
	ChunksAdded int `json:"chunks_added"`
}
