package models

// Request модели

// MarkAttendanceRequest запрос на закрытие посещаемости сессии.
// Участники из PresentMemberIDs получают Presente, остальные активные
// бронирования - Faltou.
type MarkAttendanceRequest struct {
	PresentMemberIDs []int64 `json:"presentMemberIds"`
}

// Response модели

// MarkAttendanceResponse итог закрытия посещаемости
type MarkAttendanceResponse struct {
	SessionID      int64 `json:"sessionId"`
	MarkedPresente int64 `json:"markedPresente"`
	MarkedFaltou   int64 `json:"markedFaltou"`
	// AlreadyFinalized true, если активных бронирований не осталось
	// и вызов ничего не изменил
	AlreadyFinalized bool `json:"alreadyFinalized"`
}
