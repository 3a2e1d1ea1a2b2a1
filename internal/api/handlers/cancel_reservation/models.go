package cancel_reservation

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	MemberID  int64 `json:"memberId"`
	SessionID int64 `json:"sessionId"`
}
