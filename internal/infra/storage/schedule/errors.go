package schedule

import "errors"

var (
	// ErrEntryNotFound возвращается, когда для дня недели нет строки расписания
	ErrEntryNotFound = errors.New("schedule.repository: entry not found")

	// ErrInvalidEntry возвращается, когда строка нарушает CHECK-ограничения таблицы
	ErrInvalidEntry = errors.New("schedule.repository: entry violates constraints")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
