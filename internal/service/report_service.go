package service

import (
	"go-stocktrack/internal/apperror"
	"go-stocktrack/internal/repository"
)

type ReportService interface {
	GetDashboardStats() (*repository.DashboardStats, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetDashboardStats() (*repository.DashboardStats, error) {
	stats, err := s.reportRepo.GetDashboardStats()
	if err != nil {
		return nil, apperror.Dependency("failed to aggregate dashboard stats", err)
	}
	return stats, nil
}
