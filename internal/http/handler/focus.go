package handler

import (
	"github.com/gofiber/fiber/v2"

	"fitmap/internal/model"
	"fitmap/internal/service"
	"fitmap/internal/validation"
)

const (
	maxNameLength = 200
	maxURLLength  = 2048
)

// ListFocus returns the focus catalogue.
//
// @Summary      List focuses
// @Tags         focus
// @Produce      json
// @Param        ids  query     string  false  "comma-delimited ids"
// @Success      200  {array}   model.Focus
// @Failure      500  {object}  errorPayload
// @Router       /v1/focus [get]
func ListFocus(svc service.FocusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listByQuery(c, svc.FindAll)
	}
}

// GetFocus returns a single focus.
//
// @Summary      Get a focus
// @Tags         focus
// @Produce      json
// @Param        id   path      string  true  "focus id"
// @Success      200  {object}  model.Focus
// @Failure      404  {object}  errorPayload
// @Router       /v1/focus/{id} [get]
func GetFocus(svc service.FocusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Find(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// CreateFocus creates one focus per submitted name.
//
// @Summary      Create focuses
// @Tags         focus
// @Accept       json
// @Produce      json
// @Param        names  body      []string  true  "focus names"
// @Success      201    {array}   model.Focus
// @Failure      400    {object}  errorPayload
// @Failure      415    {object}  errorPayload
// @Router       /v1/focus [post]
func CreateFocus(svc service.FocusService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := decodeStrings(c, v, maxNameLength)
		if err != nil {
			return err
		}
		res, err := svc.CreateNames(c.UserContext(), names)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// UpdateFocus renames the submitted focuses.
//
// @Summary      Update focuses
// @Tags         focus
// @Accept       json
// @Param        focuses  body  []model.Focus  true  "focuses with id and name"
// @Success      204
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /v1/focus [put]
func UpdateFocus(svc service.FocusService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		focuses, err := decodeList[*model.Focus](c)
		if err != nil {
			return err
		}
		if err := validation.Slice(v, focuses); err != nil {
			return err
		}
		if err := requireIDs(focuses); err != nil {
			return err
		}
		if _, err := svc.UpdateAll(c.UserContext(), focuses); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteFocus deletes the focuses whose ids are listed in the body.
//
// @Summary      Delete focuses
// @Tags         focus
// @Accept       json
// @Param        ids  body  []string  true  "focus ids"
// @Success      204
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /v1/focus [delete]
func DeleteFocus(svc service.FocusService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, err := decodeIDs(c, v)
		if err != nil {
			return err
		}
		if err := svc.DeleteAll(c.UserContext(), ids); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
