package ports

import "github.com/compas-audio/compas/internal/domain"

type StorageService interface {
	AddToHistory(entry domain.HistoryEntry) error
	GetHistory(limit int) ([]domain.HistoryEntry, error)
	SaveTimerMode(mode domain.TimerMode) error
	LoadTimerMode() (domain.TimerMode, error)
	Close() error
}
