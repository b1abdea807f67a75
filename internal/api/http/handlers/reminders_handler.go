package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdeskpro/helpdesk-service/internal/service"
)

// RemindersHandler exposes the cron-driven reminder sweep. Authorization is
// a shared secret checked by route middleware, not a user token.
type RemindersHandler struct {
	service *service.ReminderService
}

// NewRemindersHandler constructs handler.
func NewRemindersHandler(reminderService *service.ReminderService) *RemindersHandler {
	return &RemindersHandler{service: reminderService}
}

// Run GET /cron/reminders.
func (h *RemindersHandler) Run(c *fiber.Ctx) error {
	result, err := h.service.Sweep(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":        true,
		"ticketsChecked": result.TicketsChecked,
		"remindersSent":  result.RemindersSent,
	})
}
