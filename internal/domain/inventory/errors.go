package inventory

import (
	"fmt"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

func errModelNotConfigured(l *entity.SupplierLink) error {
	return domain.NewBusiness(domain.ErrModelNotConfigured, domain.CodeModelNotConfigured,
		fmt.Sprintf("la asignación %s no tiene un modelo de inventario válido (modelo %q)", l.ID, l.ModelID))
}
