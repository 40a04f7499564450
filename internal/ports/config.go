package ports

import "github.com/compas-audio/compas/internal/domain"

type ConfigService interface {
	Load() (domain.Config, error)
}
