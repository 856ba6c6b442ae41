// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package middleware provides gin middleware for the SimUUID service.
//
// # Request Flow
//
//	Request
//	   │
//	   ▼
//	RequestID        ── accept a valid X-Request-Id or mint a UUID v4
//	   │
//	   ▼
//	RateLimiter      ── per-client token bucket, 429 when exhausted
//	   │
//	   ▼
//	Handler          ── GetRequestID(c) for log correlation
package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-Id"

	// MaxRequestIDLength bounds client-supplied IDs.
	MaxRequestIDLength = 128
)

// requestIDKey is the gin context key for the request ID.
const requestIDKey = "simuuid_request_id"

// requestIDPattern allows alphanumerics, dashes and underscores.
var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// IsValidRequestID reports whether a client-supplied ID can be reused.
func IsValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	return requestIDPattern.MatchString(id)
}

// GetOrGenerateRequestID returns provided when valid and a new UUID v4
// otherwise.
func GetOrGenerateRequestID(provided string) string {
	if IsValidRequestID(provided) {
		return provided
	}
	return uuid.NewString()
}

// RequestID stores a request ID in the gin context and echoes it in the
// response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetOrGenerateRequestID(c.GetHeader(RequestIDHeader))
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
