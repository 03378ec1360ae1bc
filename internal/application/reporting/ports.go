package reporting

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/infrastructure/saft"
)

// ReportCache caché de relatórios versionada por empresa. Invalidate sube la
// versión, así las claves antiguas dejan de leerse y expiran solas.
type ReportCache interface {
	Version(ctx context.Context, companyID string) (int64, error)
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, companyID string) error
}

// SAFTBuilder genera el ficheiro SAF-T.
type SAFTBuilder interface {
	Build(in saft.Input) (*saft.Result, error)
}
