package handler

import (
	"github.com/gofiber/fiber/v2"

	"fitmap/internal/apperr"
	"fitmap/internal/service"
	"fitmap/internal/validation"
)

// The profile handlers serve both gyms and personal trainers.

// ListProfiles returns every profile, or the ones named in ids.
//
// @Summary      List gyms or personal trainers
// @Tags         profiles
// @Produce      json
// @Param        ids  query     string  false  "comma-delimited ids"
// @Success      200  {array}   model.Gym
// @Failure      500  {object}  errorPayload
// @Router       /v1/gyms [get]
// @Router       /v1/personal-trainers [get]
func ListProfiles[T any](svc service.ProfileService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listByQuery(c, svc.FindAll)
	}
}

// CreateProfile creates a profile with its nested contacts and addresses.
//
// @Summary      Create a gym or personal trainer
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Success      201  {object}  model.Gym
// @Failure      400  {object}  errorPayload
// @Failure      409  {object}  errorPayload
// @Failure      415  {object}  errorPayload
// @Param        profile  body  model.Gym  true  "profile with nested contacts and addresses"
// @Router       /v1/gyms [post]
// @Router       /v1/personal-trainers [post]
func CreateProfile[T any](svc service.ProfileService[T], v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item := new(T)
		if err := decodeJSON(c, item); err != nil {
			return err
		}
		if err := v.Struct(item); err != nil {
			return err
		}
		res, err := svc.Create(c.UserContext(), item)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetProfile returns the profile with its contacts and addresses.
//
// @Summary      Get a gym or personal trainer
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "profile id"
// @Success      200  {object}  model.Gym
// @Failure      404  {object}  errorPayload
// @Router       /v1/gyms/{id} [get]
// @Router       /v1/personal-trainers/{id} [get]
func GetProfile[T any](svc service.ProfileService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Find(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// UpdateProfile overwrites the profile's updatable fields. The id comes from
// the path; an id in the body is ignored.
//
// @Summary      Update a gym or personal trainer
// @Tags         profiles
// @Accept       json
// @Param        id       path  string     true  "profile id"
// @Param        profile  body  model.Gym  true  "updatable fields"
// @Success      204
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      415  {object}  errorPayload
// @Router       /v1/gyms/{id} [put]
// @Router       /v1/personal-trainers/{id} [put]
func UpdateProfile[T any, P service.Profile[T]](svc service.ProfileService[T], v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item := new(T)
		if err := decodeJSON(c, item); err != nil {
			return err
		}
		if err := v.Struct(item); err != nil {
			return err
		}
		P(item).SetID(c.Params("id"))
		if _, err := svc.Update(c.UserContext(), item); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteProfile deletes the profile with its contacts and addresses.
//
// @Summary      Delete a gym or personal trainer
// @Tags         profiles
// @Param        id   path      string  true  "profile id"
// @Success      204
// @Failure      404  {object}  errorPayload
// @Router       /v1/gyms/{id} [delete]
// @Router       /v1/personal-trainers/{id} [delete]
func DeleteProfile[T any](svc service.ProfileService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AddSports appends the submitted sports to the profile.
//
// @Summary      Add sports
// @Tags         profiles
// @Accept       json
// @Param        id      path  string    true  "profile id"
// @Param        sports  body  []string  true  "sport names"
// @Success      204
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /v1/gyms/{id}/sports [post]
// @Router       /v1/personal-trainers/{id}/sports [post]
func AddSports[T any](svc service.ProfileService[T], v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sports, err := decodeStrings(c, v, maxNameLength)
		if err != nil {
			return err
		}
		if _, err := svc.AddSports(c.UserContext(), c.Params("id"), sports); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AddGalleryPictures appends already hosted picture URLs to the gallery.
//
// @Summary      Add gallery picture URLs
// @Tags         profiles
// @Accept       json
// @Param        id    path  string    true  "profile id"
// @Param        urls  body  []string  true  "picture URLs"
// @Success      204
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Router       /v1/gyms/{id}/gallery-pictures [post]
// @Router       /v1/personal-trainers/{id}/gallery-pictures [post]
func AddGalleryPictures[T any](svc service.ProfileService[T], v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		urls, err := decodeStrings(c, v, maxURLLength)
		if err != nil {
			return err
		}
		if _, err := svc.AddGalleryPictures(c.UserContext(), c.Params("id"), urls); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadGalleryPicture stores a multipart "file" in object storage and adds
// its URL to the gallery.
//
// @Summary      Upload a gallery picture
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "profile id"
// @Param        file  formData  file    true  "picture"
// @Success      201   {object}  model.Gym
// @Failure      400   {object}  errorPayload
// @Failure      404   {object}  errorPayload
// @Router       /v1/gyms/{id}/gallery [post]
// @Router       /v1/personal-trainers/{id}/gallery [post]
func UploadGalleryPicture[T any](svc service.ProfileService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return apperr.Validation("file is required", apperr.Violation{Field: "file", Message: "is required"})
		}

		f, err := fh.Open()
		if err != nil {
			return apperr.Validation("cannot open uploaded file", apperr.Violation{Field: "file", Message: "is unreadable"})
		}
		defer f.Close()

		ct := fh.Header.Get(fiber.HeaderContentType)
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}

		res, err := svc.UploadGalleryPicture(c.UserContext(), c.Params("id"), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
