// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/services/simuuid/generator"
	"github.com/AleutianAI/simuuid/services/simuuid/handlers"
	"github.com/AleutianAI/simuuid/services/simuuid/observability"
)

// Dependencies are the shared components the handlers need.
type Dependencies struct {
	Shared         *generator.Generator
	Metrics        *observability.ServiceMetrics
	Logger         *logging.Logger
	MaxBatch       int
	MetricsHandler http.Handler
}

// SetupRoutes registers every SimUUID route on router. The /metrics route
// is skipped when deps.MetricsHandler is nil.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/simUuid", handlers.HandleSimUUID(deps.Metrics, deps.Logger))

	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// API version 1 group
	v1 := router.Group("/v1")
	{
		simuuid := v1.Group("/simuuid")
		{
			simuuid.GET("", handlers.HandleSimUUID(deps.Metrics, deps.Logger))
			simuuid.GET("/batch", handlers.HandleBatch(deps.Shared, deps.MaxBatch, deps.Metrics, deps.Logger))
			simuuid.GET("/stats", handlers.HandleStats(deps.Shared, deps.Metrics))
		}
	}
}
