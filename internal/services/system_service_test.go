package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
)

type stubHealthRepository struct {
	report domain.SystemHealthReport
	err    error
}

func (s *stubHealthRepository) Collect(context.Context) (domain.SystemHealthReport, error) {
	return s.report, s.err
}

func TestSystemServiceHealthReportFillsDefaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc, err := NewSystemService(SystemServiceDeps{
		HealthRepository: &stubHealthRepository{},
		Clock:            func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new system service: %v", err)
	}

	report, err := svc.HealthReport(context.Background())
	if err != nil {
		t.Fatalf("health report: %v", err)
	}
	if report.GeneratedAt != now {
		t.Fatalf("expected generatedAt from clock, got %s", report.GeneratedAt)
	}
	if report.Status != domain.HealthStatusOK {
		t.Fatalf("expected ok default status, got %s", report.Status)
	}
	if report.Checks == nil {
		t.Fatal("expected non-nil checks map")
	}
}

func TestSystemServiceHealthReportPropagatesErrors(t *testing.T) {
	wantErr := errors.New("firestore unreachable")
	svc, err := NewSystemService(SystemServiceDeps{
		HealthRepository: &stubHealthRepository{err: wantErr},
	})
	if err != nil {
		t.Fatalf("new system service: %v", err)
	}
	if _, err := svc.HealthReport(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected collect error, got %v", err)
	}
}
