package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for profile aggregates and their
// experience/education collections.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me handles GET /profile/me.
//
// @Summary      Current actor's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetOwn(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// List handles GET /profile.
//
// @Summary      List all profiles
// @Tags         profile
// @Produce      json
// @Success      200  {array}  domain.Profile
// @Router       /profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetByUser handles GET /profile/user/:user_id.
//
// @Summary      Profile by owner id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "Owner user id"
// @Success      200      {object}  domain.Profile
// @Failure      404      {object}  map[string]string
// @Router       /profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUser(c echo.Context) error {
	profile, err := h.service.GetByOwner(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles POST /profile — create-or-update the actor's profile.
//
// @Summary      Create or update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /profile [post]
func (h *ProfileHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.Update(c.Request().Context(), actor, ports.UpdateProfileInput{
		Status:         req.Status,
		Skills:         splitSkills(req.Skills),
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: domain.SocialLinks{
			Youtube:   req.Social.Youtube,
			Twitter:   req.Social.Twitter,
			Facebook:  req.Social.Facebook,
			Linkedin:  req.Social.Linkedin,
			Instagram: req.Social.Instagram,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Delete handles DELETE /profile — removes the actor's profile, posts
// and account.
//
// @Summary      Delete own profile and account
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteOwn(c.Request().Context(), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "account deleted"})
}

// AddExperience handles PUT /profile/experience.
//
// @Summary      Prepend a work history entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      experienceRequest  true  "Experience entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /profile/experience [put]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req experienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.AddExperience(c.Request().Context(), actor, ports.AddExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveExperience handles DELETE /profile/experience/:id.
//
// @Summary      Remove a work history entry
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Entry id"
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile/experience/{id} [delete]
func (h *ProfileHandler) RemoveExperience(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profile, err := h.service.RemoveExperience(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// AddEducation handles PUT /profile/education.
//
// @Summary      Prepend a study history entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      educationRequest  true  "Education entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /profile/education [put]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req educationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.AddEducation(c.Request().Context(), actor, ports.AddEducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveEducation handles DELETE /profile/education/:id.
//
// @Summary      Remove a study history entry
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Entry id"
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile/education/{id} [delete]
func (h *ProfileHandler) RemoveEducation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profile, err := h.service.RemoveEducation(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
