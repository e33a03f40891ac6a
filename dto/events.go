package dto

// CandidateIngested is published after a parsed CV has been persisted.
type CandidateIngested struct {
	CandidateID string `json:"candidateId"`
	MessageID   string `json:"messageId"`
	Filename    string `json:"filename"`
	FromAddress string `json:"fromAddress"`
}
