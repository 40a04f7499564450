package ports

import "github.com/compas-audio/compas/internal/domain"

type LibraryService interface {
	Scan() ([]domain.Track, error)
}
