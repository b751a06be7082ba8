package crm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/domain"
	domaincrm "github.com/jhoicas/CRM-api/internal/domain/crm"
	"github.com/jhoicas/CRM-api/pkg/csvtext"
	"github.com/jhoicas/CRM-api/pkg/logger"
)

// ImportUseCase importa leads desde texto CSV con un mapeo de columnas.
type ImportUseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx ports.TxRunner, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{tx: tx, log: log.Component("import"), now: time.Now}
}

// Import parsea el CSV, descarta duplicados contra los leads existentes y dentro del propio
// lote, e inserta el resto en una sola operación atómica.
func (uc *ImportUseCase) Import(ctx context.Context, in dto.ImportLeadsRequest) (*dto.ImportLeadsResponse, error) {
	if strings.TrimSpace(in.CSV) == "" {
		return nil, domain.Invalid("csv", "CSV requerido")
	}
	table := csvtext.Parse(in.CSV)
	if len(table.Rows) == 0 {
		return nil, domain.Invalid("csv", "CSV sin datos")
	}
	rows := make([]map[string]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, r)
	}

	var plan domaincrm.ImportPlan
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		stages, err := tx.Stages.List(ctx)
		if err != nil {
			return err
		}
		existing, err := tx.Leads.ListSummaries(ctx)
		if err != nil {
			return err
		}

		plan = domaincrm.PlanImport(rows, in.Mapping, existing, stages)
		if len(plan.Leads) == 0 {
			return domain.ErrNoValidRows
		}

		now := uc.now().UTC()
		for _, l := range plan.Leads {
			l.ID = uuid.New().String()
			l.CreatedAt = now
			l.UpdatedAt = now
		}
		_, err = tx.Leads.CreateMany(ctx, plan.Leads)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int("rows", len(rows)).
		Int("count", len(plan.Leads)).
		Int("skipped", plan.Skipped).
		Msg("importación CSV")

	return &dto.ImportLeadsResponse{OK: true, Count: len(plan.Leads), Skipped: plan.Skipped}, nil
}
