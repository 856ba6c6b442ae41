// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/services/simuuid/generator"
	"github.com/AleutianAI/simuuid/services/simuuid/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testDeps(t *testing.T, withMetrics bool) Dependencies {
	t.Helper()
	reg := prometheus.NewRegistry()
	shared, err := generator.Build(generator.Config{X: 2, Y: 7, Z: 5, Logger: logging.Nop()})
	require.NoError(t, err)

	deps := Dependencies{
		Shared:   shared,
		Metrics:  observability.NewServiceMetrics(reg),
		Logger:   logging.Nop(),
		MaxBatch: 10,
	}
	if withMetrics {
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	return deps
}

func routeSet(router *gin.Engine) map[string]bool {
	out := make(map[string]bool)
	for _, r := range router.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestSetupRoutes_RegistersEndpoints(t *testing.T) {
	// Arrange
	router := gin.New()

	// Act
	SetupRoutes(router, testDeps(t, true))

	// Assert
	routes := routeSet(router)
	for _, want := range []string{
		"GET /health",
		"GET /simUuid",
		"GET /metrics",
		"GET /v1/simuuid",
		"GET /v1/simuuid/batch",
		"GET /v1/simuuid/stats",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestSetupRoutes_NoMetricsHandler(t *testing.T) {
	router := gin.New()

	SetupRoutes(router, testDeps(t, false))

	assert.False(t, routeSet(router)["GET /metrics"])
}

func TestSetupRoutes_MetricsServesCollectors(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, testDeps(t, true))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/simUuid", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `simuuid_http_requests_total{endpoint="simuuid",status="success"} 1`)
}
