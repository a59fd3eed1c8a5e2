package schedule

import "errors"

var (
	// ErrInvalidTemplate возвращается, когда шаблон не содержит ровно 7 разных дней
	ErrInvalidTemplate = errors.New("schedule: template must contain exactly one entry per weekday")

	// ErrInvalidEntry возвращается, когда строка дня нарушает правила расписания
	ErrInvalidEntry = errors.New("schedule: invalid entry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
