package usecase

import (
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

type noopObserver struct{}

func (noopObserver) ObserveExtraction(domain.Format, time.Duration, error) {}
func (noopObserver) ObserveSynthesis(time.Duration, error)                 {}
func (noopObserver) ObserveDeck(int)                                       {}
func (noopObserver) ObserveExport(int, error)                              {}

func observerOrNoop(observer ports.PipelineObserver) ports.PipelineObserver {
	if observer == nil {
		return noopObserver{}
	}
	return observer
}
