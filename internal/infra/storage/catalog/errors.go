package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена (или неактивна для GetActiveByID)
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrServiceInUse возвращается, когда на услугу ссылаются записи и удалить ее нельзя
	ErrServiceInUse = errors.New("catalog.repository: service is referenced by appointments")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
