//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"whisperd/internal/api/server"
	"whisperd/internal/config"
)

// InitializeServer loads the model and builds the HTTP server.
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(ServerSet)
	return &server.Server{}, nil
}
