package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена или не в ожидаемом состоянии
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotConflict возвращается, когда подтвержденная запись пересекается с существующей
	// (нарушение ограничения appointments_no_overlap)
	ErrSlotConflict = errors.New("appointment.repository: slot conflict")

	// ErrServiceReference возвращается, когда service_id не существует
	ErrServiceReference = errors.New("appointment.repository: unknown service")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
