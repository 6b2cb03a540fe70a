package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fitmap/internal/apperr"
	"fitmap/internal/crud"
	"fitmap/internal/validation"
)

// decodeJSON checks the content type and decodes the request body into v
// with the app's JSON decoder.
func decodeJSON(c *fiber.Ctx, v any) error {
	if err := validation.CheckContentType(c.Get(fiber.HeaderContentType)); err != nil {
		return err
	}
	if err := c.App().Config().JSONDecoder(c.Body(), v); err != nil {
		return apperr.Validation("request body is not valid JSON",
			apperr.Violation{Field: "", Message: err.Error()})
	}
	return nil
}

// decodeList decodes a non-empty JSON array body.
func decodeList[T any](c *fiber.Ctx) ([]T, error) {
	var list []T
	if err := decodeJSON(c, &list); err != nil {
		return nil, err
	}
	if err := validation.CheckNotEmpty(list); err != nil {
		return nil, err
	}
	return list, nil
}

// decodeStrings decodes a non-empty JSON array of non-blank strings, such as
// focus names, ids, sports or picture URLs.
func decodeStrings(c *fiber.Ctx, v *validation.Validator, maxLen int) ([]string, error) {
	list, err := decodeList[string](c)
	if err != nil {
		return nil, err
	}
	if err := v.Strings(list, maxLen); err != nil {
		return nil, err
	}
	return list, nil
}

// decodeIDs decodes a non-empty JSON array of document ids.
func decodeIDs(c *fiber.Ctx, v *validation.Validator) ([]string, error) {
	list, err := decodeList[string](c)
	if err != nil {
		return nil, err
	}
	if err := v.IDs(list); err != nil {
		return nil, err
	}
	return list, nil
}

// idsQuery parses the comma-delimited ids query parameter. present is false
// when the parameter is absent, which selects every document.
func idsQuery(c *fiber.Ctx) (ids []string, present bool) {
	if !c.Context().QueryArgs().Has("ids") {
		return nil, false
	}
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, true
}

// listByQuery answers a list request through find. A present ids parameter
// without any usable id matches nothing.
func listByQuery[T any](c *fiber.Ctx, find func(ctx context.Context, ids ...string) ([]*T, error)) error {
	ids, present := idsQuery(c)
	if present && len(ids) == 0 {
		return c.JSON([]*T{})
	}
	res, err := find(c.UserContext(), ids...)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// requireIDs rejects list items that carry no id. Items must already be
// validated as non-null.
func requireIDs[T any, P crud.Ptr[T]](items []*T) error {
	var violations []apperr.Violation
	for i, item := range items {
		if strings.TrimSpace(P(item).GetID()) == "" {
			violations = append(violations, apperr.Violation{Field: indexed(i, "id"), Message: "is required"})
		}
	}
	if len(violations) > 0 {
		return apperr.Validation("payload is invalid", violations...)
	}
	return nil
}

func indexed(i int, field string) string {
	return "[" + strconv.Itoa(i) + "]." + field
}
