package data

import (
	"context"
	"minecomply/lib/api"
	"minecomply/lib/models"

	"github.com/sirupsen/logrus"
)

// AuthDebugRepository exposes the backend's auth diagnostics endpoints
type AuthDebugRepository interface {
	GetAuthDebugMe(ctx context.Context) (*models.AuthDebugMe, error)
	GetAuthDebugHeaders(ctx context.Context) (*models.AuthDebugHeaders, error)
}

type AuthDebugDao struct {
	API    *api.Client
	Logger *logrus.Logger
}

func NewAuthDebugRepository(client *api.Client, logger *logrus.Logger) AuthDebugRepository {
	return &AuthDebugDao{API: client, Logger: logger}
}

func (dao *AuthDebugDao) GetAuthDebugMe(ctx context.Context) (*models.AuthDebugMe, error) {
	var result models.AuthDebugMe
	if err := dao.API.Get(ctx, "/auth-debug/me", &result); err != nil {
		dao.Logger.WithError(err).WithField("operation", "GetAuthDebugMe").Warn("Auth debug request failed")
		return nil, err
	}
	return &result, nil
}

func (dao *AuthDebugDao) GetAuthDebugHeaders(ctx context.Context) (*models.AuthDebugHeaders, error) {
	var result models.AuthDebugHeaders
	if err := dao.API.Get(ctx, "/auth-debug/headers", &result); err != nil {
		dao.Logger.WithError(err).WithField("operation", "GetAuthDebugHeaders").Warn("Auth debug request failed")
		return nil, err
	}
	return &result, nil
}
