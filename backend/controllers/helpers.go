package controllers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"signlearn/backend/session"
	"signlearn/backend/utils"
)

// parseBody decodes the JSON body into dst and runs its validate tags.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return utils.ErrValidation("Cannot parse JSON")
	}
	return utils.ValidateStruct(dst)
}

func paramID(c *fiber.Ctx, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.ErrValidation("Invalid " + label + " ID")
	}
	return uint(id), nil
}

func currentUser(c *fiber.Ctx) (*session.Identity, error) {
	id, err := session.Current(c)
	if err != nil {
		return nil, utils.ErrUnauthorized("Not authenticated")
	}
	return id, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
