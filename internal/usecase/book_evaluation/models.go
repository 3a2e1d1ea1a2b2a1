package book_evaluation

import "time"

// Request модель запроса на запись к оценке физической формы
type Request struct {
	MemberID    int64     // ID участника
	RequestedAt time.Time // Запрошенные дата и время оценки
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64     // ID созданной записи
	MemberID    int64     // ID участника
	RequestedAt time.Time // Запрошенные дата и время
	Status      string    // Статус записи

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
