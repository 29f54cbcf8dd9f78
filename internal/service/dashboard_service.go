package service

import (
	"context"
	"encoding/json"
	"time"

	"refcheck_backend/internal/model"
	"refcheck_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const dashboardCacheKey = "refcheck:dashboard:stats"
const dashboardCacheTTL = time.Minute

type DashboardService struct {
	TemplateRepo *repository.TemplateRepository
	RefereeRepo  *repository.RefereeRepository
	FormRepo     *repository.FormRepository
	ResponseRepo *repository.ResponseRepository
	Redis        *redis.Client
}

func NewDashboardService(templateRepo *repository.TemplateRepository, refereeRepo *repository.RefereeRepository, formRepo *repository.FormRepository, responseRepo *repository.ResponseRepository, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		TemplateRepo: templateRepo,
		RefereeRepo:  refereeRepo,
		FormRepo:     formRepo,
		ResponseRepo: responseRepo,
		Redis:        rdb,
	}
}

type DashboardStats struct {
	TotalReferees  int64 `json:"totalReferees"`
	TotalTemplates int64 `json:"totalTemplates"`
	AssignedForms  int64 `json:"assignedForms"`
	PendingForms   int64 `json:"pendingForms"`
	CompletedForms int64 `json:"completedForms"`
	TotalResponses int64 `json:"totalResponses"`
	// Responses submitted within the last 30 days.
	RecentResponses int64 `json:"recentResponses"`
}

// Stats aggregates the dashboard counters, served from a short-lived
// Redis cache.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := &DashboardStats{}
	var err error

	if stats.TotalReferees, err = s.RefereeRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.TotalTemplates, err = s.TemplateRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.AssignedForms, err = s.FormRepo.Count(); err != nil {
		return nil, err
	}
	if stats.PendingForms, err = s.FormRepo.CountByStatus(model.FormPending); err != nil {
		return nil, err
	}
	if stats.CompletedForms, err = s.FormRepo.CountByStatus(model.FormCompleted); err != nil {
		return nil, err
	}
	if stats.TotalResponses, err = s.ResponseRepo.Count(); err != nil {
		return nil, err
	}
	if stats.RecentResponses, err = s.ResponseRepo.CountSince(time.Now().AddDate(0, 0, -30)); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.Redis.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
		}
	}

	return stats, nil
}
