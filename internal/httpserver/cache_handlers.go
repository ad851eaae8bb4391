package httpserver

import (
	"fmt"
	"net/http"

	"go-gql-cache/internal/auth"
	"go-gql-cache/internal/models"
)

// descriptorFromRequest combines the request body's operation fields with the
// caller's verified identity into a key descriptor.
func descriptorFromRequest(req *CacheRequest, caller auth.CallerContext) *models.KeyDescriptor {
	return &models.KeyDescriptor{
		Query:       req.Query,
		Variables:   req.Variables,
		UserID:      caller.UserID,
		Role:        caller.Role,
		Permissions: caller.Permissions,
	}
}

// handleGet handles GET cache requests
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	caller, err := s.callerContext(r)
	if err != nil {
		s.writeErrorResponse(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	var req CacheRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Query == "" {
		s.writeErrorResponse(w, "Missing required field: query", http.StatusBadRequest)
		return
	}

	result, err := s.cacheService.Get(descriptorFromRequest(&req, caller))
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Cache service error: %v", err), http.StatusBadRequest)
		return
	}

	status := CacheStatusMiss
	if result.Found {
		status = CacheStatusHit
	}

	s.writeResponse(w, &CacheResponse{
		Success:     true,
		Found:       result.Found,
		Data:        result.Data,
		Key:         result.Key,
		CacheStatus: status,
	})
}

// handleSet handles SET cache requests
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	caller, err := s.callerContext(r)
	if err != nil {
		s.writeErrorResponse(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	var req CacheRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Query == "" || len(req.Data) == 0 {
		s.writeErrorResponse(w, "Missing required fields: query, data", http.StatusBadRequest)
		return
	}

	if err := s.cacheService.Set(descriptorFromRequest(&req, caller), req.Data, req.TTLMs); err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Cache service error: %v", err), http.StatusBadRequest)
		return
	}

	s.writeResponse(w, &CacheResponse{
		Success: true,
	})
}

// handleInvalidate handles pattern-based bulk invalidation, typically raised
// by mutation handlers after a write.
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deleted := s.cacheService.Invalidate(models.InvalidationPattern{
		Query:  req.Query,
		UserID: req.UserID,
		Role:   req.Role,
	})

	s.writeResponse(w, &CacheResponse{
		Success:     true,
		Invalidated: deleted,
	})
}

// handleClear handles full cache clear requests
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.cacheService.Clear()

	s.writeResponse(w, &CacheResponse{
		Success: true,
	})
}

// handleStats handles cache utilization requests
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, s.cacheService.Stats())
}
