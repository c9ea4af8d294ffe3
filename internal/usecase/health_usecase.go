package usecase

import (
	"context"
	"time"
)

// HealthProbe checks one dependency; a nil error means healthy
type HealthProbe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	probes map[string]HealthProbe
}

// NewHealthUsecase reports the state of each named dependency
func NewHealthUsecase(probes map[string]HealthProbe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

// Check runs every probe and returns per-dependency status plus an overall verdict
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result := map[string]string{"status": "ok"}
	healthy := true
	for name, probe := range u.probes {
		if err := probe(ctx); err != nil {
			result[name] = "down"
			healthy = false
			continue
		}
		result[name] = "ok"
	}
	if !healthy {
		result["status"] = "degraded"
	}
	return result, healthy
}
