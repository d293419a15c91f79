package server

import (
	"net/http"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/cache"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.SendString("🚀 FlashFood auxiliary service is running")
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return ok(c, "ok", fiber.Map{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	if s.deps.Jobs == nil {
		return ok(c, "no jobs", []any{})
	}
	return ok(c, "ok", s.deps.Jobs.Stats())
}

func (s *Server) handleCollections(c *fiber.Ctx) error {
	return s.snapshot(c, false)
}

func (s *Server) handlePrepare(c *fiber.Ctx) error {
	return s.snapshot(c, true)
}

func (s *Server) snapshot(c *fiber.Ctx, force bool) error {
	if s.deps.Preparer == nil {
		return fail(c, fiber.StatusServiceUnavailable, "data preparation is not configured")
	}
	snap, err := s.deps.Preparer.Snapshot(c.UserContext(), force)
	if err != nil {
		s.deps.Log.Failure("prepare data", err)
		return fail(c, fiber.StatusBadGateway, err.Error())
	}
	return ok(c, "Data collections ready", summary(snap))
}

func summary(snap *cache.Snapshot) fiber.Map {
	return fiber.Map{
		"prepared_at": snap.PreparedAt,
		"counts":      snap.Counts(),
	}
}

// handleAdminChart clears the period, inserts the row directly and falls
// back to the backend's own chart computation when that fails.
func (s *Server) handleAdminChart(c *fiber.Ctx) error {
	var chart api.Record
	if err := c.BodyParser(&chart); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid chart body: "+err.Error())
	}
	ctx := c.UserContext()

	period := api.Record{
		"period_start": chart["period_start"],
		"period_end":   chart["period_end"],
		"period_type":  chart["period_type"],
	}
	// the backend may not expose delete-period at all
	_, _ = s.deps.Backend.Post(ctx, "admin-chart/delete-period", nil, period)

	env, err := s.deps.Backend.Post(ctx, "admin-chart/direct-insert", nil, chart)
	if err == nil {
		s.deps.Log.Success("Admin chart %s inserted directly", chart.ID())
		return ok(c, "Admin chart data inserted directly into database", fiber.Map{
			"recordId": chart.ID(),
			"backend":  env.EM,
		})
	}
	s.deps.Log.Failure("direct chart insert", err)

	fallback := api.Record{
		"startDate":  chart["period_start"],
		"endDate":    chart["period_end"],
		"periodType": chart["period_type"],
	}
	if _, ferr := s.deps.Backend.Post(ctx, "admin-chart/update", nil, fallback); ferr != nil {
		s.deps.Log.Failure("fallback chart update", ferr)
		return fail(c, http.StatusBadGateway, "Failed to insert admin chart data: "+api.Message(err))
	}
	return ok(c, "Admin chart data generated via fallback endpoint", fiber.Map{"method": "fallback"})
}
