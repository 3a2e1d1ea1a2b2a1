package book_class

import "time"

// Request модель запроса на бронирование места на сессии
type Request struct {
	MemberID  int64 // ID участника
	SessionID int64 // ID сессии занятия
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	MemberID   int64     // ID участника
	SessionID  int64     // ID сессии
	ReservedAt time.Time // Момент бронирования
	Status     string    // Статус бронирования

	// Денормализованные данные сессии
	ClassName      string // Название занятия
	SessionDate    string // Дата сессии (YYYY-MM-DD)
	StartTime      string // Время начала (HH:MM)
	EndTime        string // Время окончания (HH:MM)
	Room           int    // Номер зала
	SeatsRemaining int    // Свободных мест после бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
