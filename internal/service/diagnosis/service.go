package diagnosis

import (
	"context"
	"fmt"
	"time"

	"github.com/ameerdental/clinic-api/internal/ai"
	"github.com/ameerdental/clinic-api/internal/model"
	"github.com/ameerdental/clinic-api/pkg/circuitbreaker"
	apperrors "github.com/ameerdental/clinic-api/pkg/errors"
	"github.com/ameerdental/clinic-api/pkg/metrics"
)

// Service fronts the AI symptom-analysis collaborator. Calls are not
// retried; a failing collaborator trips the breaker and subsequent calls
// fail fast until it recovers.
type Service struct {
	analyzer ai.SymptomAnalyzer
	breaker  *circuitbreaker.CircuitBreaker
	metrics  *metrics.Metrics
}

func NewService(analyzer ai.SymptomAnalyzer, breakerWindow time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		analyzer: analyzer,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "gemini",
			MaxFailures: 5,
			Timeout:     breakerWindow,
		}),
		metrics: m,
	}
}

func (s *Service) AnalyzeSymptoms(ctx context.Context, symptoms string) (*model.DiagnosisResult, error) {
	if symptoms == "" {
		return nil, apperrors.NewValidation("symptoms text is required")
	}

	start := time.Now()
	var result *model.DiagnosisResult
	err := s.breaker.Execute(func() error {
		var callErr error
		result, callErr = s.analyzer.AnalyzeSymptoms(ctx, symptoms)
		return callErr
	})

	if s.metrics != nil {
		s.metrics.DiagnosisLatency.Observe(time.Since(start).Seconds())
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		s.metrics.DiagnosisRequests.WithLabelValues(outcome).Inc()
	}

	if err != nil {
		return nil, fmt.Errorf("symptom analysis failed: %w", err)
	}
	return result, nil
}
