package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"fitmap/internal/crud"
	"fitmap/internal/validation"
)

// Handlers for contacts and addresses, scoped by the parent id in the path.

// ListChildren returns the parent's contacts or addresses, or the ones named
// in ids.
//
// @Summary      List contacts or addresses
// @Tags         children
// @Produce      json
// @Param        id   path      string  true   "parent id"
// @Param        ids  query     string  false  "comma-delimited ids"
// @Success      200  {array}   object
// @Failure      500  {object}  errorPayload
// @Router       /v1/gyms/{id}/contacts [get]
// @Router       /v1/gyms/{id}/addresses [get]
// @Router       /v1/personal-trainers/{id}/contacts [get]
// @Router       /v1/personal-trainers/{id}/addresses [get]
func ListChildren[C any, PC crud.Ptr[C]](svc *crud.SubCollectionService[C, PC]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listByQuery(c, func(ctx context.Context, ids ...string) ([]*C, error) {
			return svc.FindAll(ctx, c.Params("id"), ids...)
		})
	}
}

// CreateChildren creates every listed child under the parent. Any failed item
// fails the request; the items created before it stay stored.
//
// @Summary      Create contacts or addresses
// @Tags         children
// @Accept       json
// @Produce      json
// @Param        id     path      string    true  "parent id"
// @Param        items  body      []object  true  "contacts or addresses"
// @Success      201    {array}   object
// @Failure      400    {object}  errorPayload
// @Failure      404    {object}  errorPayload
// @Failure      409    {object}  errorPayload
// @Failure      415    {object}  errorPayload
// @Router       /v1/gyms/{id}/contacts [post]
// @Router       /v1/gyms/{id}/addresses [post]
// @Router       /v1/personal-trainers/{id}/contacts [post]
// @Router       /v1/personal-trainers/{id}/addresses [post]
func CreateChildren[C any](create func(ctx context.Context, parentID string, items []*C) ([]*C, error), v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := decodeList[*C](c)
		if err != nil {
			return err
		}
		if err := validation.Slice(v, items); err != nil {
			return err
		}
		res, err := create(c.UserContext(), c.Params("id"), items)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// UpdateChildren overwrites the listed contacts or addresses by id.
//
// @Summary      Update contacts or addresses
// @Tags         children
// @Accept       json
// @Param        id     path  string    true  "parent id"
// @Param        items  body  []object  true  "contacts or addresses with id"
// @Success      204
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /v1/gyms/{id}/contacts [put]
// @Router       /v1/gyms/{id}/addresses [put]
// @Router       /v1/personal-trainers/{id}/contacts [put]
// @Router       /v1/personal-trainers/{id}/addresses [put]
func UpdateChildren[C any, PC crud.Ptr[C]](svc *crud.SubCollectionService[C, PC], v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := decodeList[*C](c)
		if err != nil {
			return err
		}
		if err := validation.Slice(v, items); err != nil {
			return err
		}
		if err := requireIDs[C, PC](items); err != nil {
			return err
		}
		if _, err := svc.UpdateAll(c.UserContext(), c.Params("id"), items); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteChildren deletes the contacts or addresses whose ids are listed.
//
// @Summary      Delete contacts or addresses
// @Tags         children
// @Accept       json
// @Param        id   path  string    true  "parent id"
// @Param        ids  body  []string  true  "child ids"
// @Success      204
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /v1/gyms/{id}/contacts [delete]
// @Router       /v1/gyms/{id}/addresses [delete]
// @Router       /v1/personal-trainers/{id}/contacts [delete]
// @Router       /v1/personal-trainers/{id}/addresses [delete]
func DeleteChildren[C any, PC crud.Ptr[C]](svc *crud.SubCollectionService[C, PC], v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, err := decodeIDs(c, v)
		if err != nil {
			return err
		}
		if err := svc.DeleteAll(c.UserContext(), c.Params("id"), ids); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
