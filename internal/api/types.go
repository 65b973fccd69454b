package api

// chatPayload is the inbound conversational request. ConversationID is
// accepted for forward compatibility and currently unused; no conversation
// state is persisted.
type chatPayload struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}
