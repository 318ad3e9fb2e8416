package streak

type SubmitRequest struct {
	Words []string `json:"words"`
	Score int      `json:"score"`
}

type HistoryResponse struct {
	Message string    `json:"message,omitempty"`
	Streaks []*Record `json:"streaks"`
}
