package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrNotFoundOrAlreadyCancelled возвращается, когда отменять нечего
	ErrNotFoundOrAlreadyCancelled = errors.New("appointment not found or already cancelled")

	// ErrNotCancelled возвращается при попытке удалить неотмененную запись
	ErrNotCancelled = errors.New("only cancelled appointments can be deleted")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
