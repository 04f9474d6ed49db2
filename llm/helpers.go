package llm

// ChatMessages returns the request's messages with SystemPrompt, if set,
// prepended as a system message.
func ChatMessages(req CompletionRequest) []Message {
	if req.SystemPrompt == "" {
		return req.Messages
	}
	msgs := make([]Message, 0, len(req.Messages)+1)
	msgs = append(msgs, Message{Role: RoleSystem, Content: req.SystemPrompt})
	return append(msgs, req.Messages...)
}
