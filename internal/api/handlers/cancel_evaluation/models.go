package cancel_evaluation

// CancelEvaluationRequest HTTP request model
type CancelEvaluationRequest struct {
	MemberID int64 `json:"memberId"`
}
