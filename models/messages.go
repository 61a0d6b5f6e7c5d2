package models

type MessagesPostRequest struct {
	// Nick of the user that sent the message.
	Nick string `json:"nick"`

	// Text of the message, e.g. ".wa next full moon".
	Text string `json:"text"`
}

type MessagesPostResponse struct {
	// Lines to say in the channel, in order.
	Lines []string `json:"lines"`
}
