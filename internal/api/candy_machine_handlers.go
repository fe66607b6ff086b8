package api

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

// handleSaveCandyMachine upserts a full candy machine record
func (s *APIServer) handleSaveCandyMachine(c *fiber.Ctx) error {
	var body models.CandyMachine
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	record, err := s.deploymentService.Save(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// handleListCandyMachines lists records, optionally filtered by deployment status
func (s *APIServer) handleListCandyMachines(c *fiber.Ctx) error {
	var (
		records []models.CandyMachine
		err     error
	)
	if status := models.DeploymentStatus(c.Query("status")); status != "" {
		if !status.IsValid() {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid status %q", status))
		}
		records, err = s.candyMachineService.ListByStatus(c.UserContext(), status)
	} else {
		records, err = s.candyMachineService.ListAll(c.UserContext())
	}
	if err != nil {
		return err
	}
	if records == nil {
		records = []models.CandyMachine{}
	}
	return c.JSON(fiber.Map{"candyMachines": records, "count": len(records)})
}

func (s *APIServer) handleGetCandyMachine(c *fiber.Ctx) error {
	record, err := s.candyMachineService.Load(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if record == nil {
		return fiber.NewError(fiber.StatusNotFound, "candy machine not found")
	}
	return c.JSON(record)
}

// handleUpdateCandyMachine merges a JSON body over the stored record:
// absent keys are kept, null clears an optional field
func (s *APIServer) handleUpdateCandyMachine(c *fiber.Ctx) error {
	var patch models.CandyMachinePatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if patch.IsEmpty() {
		return fiber.NewError(fiber.StatusBadRequest, "patch sets no fields")
	}

	record, err := s.deploymentService.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *APIServer) handleDeleteCandyMachine(c *fiber.Ctx) error {
	if err := s.candyMachineService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
