package handlers

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/redissvc"
	repo "github.com/rogerio-castellano/stockroom/internal/repo"
)

var (
	svc *inventory.Service

	catalogRepo   repo.CatalogRepository
	operationRepo repo.OperationRepository
	metricsRepo   repo.MetricsRepository
	userRepo      repo.UserRepository

	lowStockThreshold = 10

	Rdb *redis.Client
	Ctx context.Context
)

func SetInventoryService(s *inventory.Service) {
	svc = s
}

func SetCatalogRepo(r repo.CatalogRepository) {
	catalogRepo = r
}

func SetOperationRepo(r repo.OperationRepository) {
	operationRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetLowStockThreshold(threshold int) {
	if threshold > 0 {
		lowStockThreshold = threshold
	}
}

func SetRedisService(rs *redissvc.RedisService) {
	Rdb = rs.Rdb()
	Ctx = rs.Ctx()
}
