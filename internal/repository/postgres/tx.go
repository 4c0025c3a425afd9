package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/visitflow/visitflow/internal/service"
)

// TxManager runs a function against transaction-scoped repositories. The
// scheduling engine uses it to make its read-check-write sequences atomic:
// row locks taken inside fn hold until commit or rollback.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) RunInTx(ctx context.Context, fn func(r service.Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(service.Repos{
			Appointments: NewAppointmentRepository(tx),
			Visitors:     NewVisitorRepository(tx),
			Employees:    NewEmployeeRepository(tx),
			Companies:    NewCompanyRepository(tx),
		})
	})
}

var _ service.TxManager = (*TxManager)(nil)
