package list_services

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

type CatalogService interface {
	GetActiveService(ctx context.Context, id int64) (*models.ServiceResponse, error)
	ListActive(ctx context.Context) (*models.ServiceListResponse, error)
	ListAll(ctx context.Context) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
