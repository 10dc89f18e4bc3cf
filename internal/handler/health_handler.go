package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Diagnoser is the store surface used by the diagnostic endpoint.
type Diagnoser interface {
	Ping(ctx context.Context) error
	Name() string
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// HealthHandler handles the root and diagnostic endpoints.
type HealthHandler struct {
	store Diagnoser
}

// NewHealthHandler creates a new HealthHandler with the given store.
func NewHealthHandler(store Diagnoser) *HealthHandler {
	return &HealthHandler{store: store}
}

// Root handles GET / with a simple liveness message.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Coupons Backend Running"})
}

// diagnosticResponse reports backend and store status for GET /test.
type diagnosticResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseName     string   `json:"database_name,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Test handles GET /test. Store unavailability is soft-degraded here:
// the endpoint always answers 200 and reports what it could reach, unlike
// the business routes which fail loudly.
func (h *HealthHandler) Test(c *fiber.Ctx) error {
	resp := diagnosticResponse{
		Backend:          "running",
		Database:         "not available",
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	if err := h.store.Ping(c.Context()); err != nil {
		log.Error().Err(err).Msg("diagnostic ping failed: database unreachable")
		return c.JSON(resp)
	}

	resp.Database = "connected"
	resp.DatabaseName = h.store.Name()
	resp.ConnectionStatus = "connected"

	names, err := h.store.ListCollectionNames(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("diagnostic collection listing failed")
		resp.Database = "connected but degraded"
		return c.JSON(resp)
	}
	if len(names) > 10 {
		names = names[:10]
	}
	resp.Collections = names

	return c.JSON(resp)
}
