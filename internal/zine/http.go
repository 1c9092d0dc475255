// Copyright (c) 2026 Zinery. All rights reserved.

package zine

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zinery/zinery/internal/platform/middleware"
	requestutil "github.com/zinery/zinery/internal/platform/request"
	"github.com/zinery/zinery/internal/platform/respond"
	"github.com/zinery/zinery/internal/platform/validate"
	"github.com/zinery/zinery/pkg/pagination"
)

// Handler implements zine management HTTP endpoints. All routes operate
// on the caller's own zines; the public reading surface lives elsewhere.
type Handler struct {
	zineService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{zineService: service}
}

// Routes returns a [chi.Router] configured with zine routes.
//
// # Endpoints
//   - POST   /          : Creates a zine under the caller's publisher.
//   - GET    /          : Lists the caller's zines.
//   - GET    /{zineID}  : Returns one owned zine.
//   - PATCH  /{zineID}  : Updates metadata and visibility.
//   - DELETE /{zineID}  : Deletes the zine and its issues.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/", handler.listMine)
	router.Get("/{zineID}", handler.get)
	router.Patch("/{zineID}", handler.update)
	router.Delete("/{zineID}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	Password    string `json:"password"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
	Password    *string `json:"password"`
}

/*
Create starts a new zine under the caller's publisher.

POST /api/v1/zines

Response:
  - 201: Zine: Created zine with its derived slug
  - 404: ErrNotFound: Caller has no publisher profile
  - 409: ErrConflict: Slug already used within the publisher
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		MaxLen(FieldDescription, input.Description, DescriptionMaxLength)

	if input.Visibility != "" {
		validator.OneOf(FieldVisibility, input.Visibility, Visibilities...)
	}
	if input.Visibility == string(VisibilityPassword) {
		validator.Required(FieldPassword, input.Password).
			MinLen(FieldPassword, input.Password, PasswordMinLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	zine, err := handler.zineService.Create(request.Context(), userID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Visibility:  Visibility(input.Visibility),
		Password:    input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, zine)
}

// listMine returns the caller's zines, newest first, paginated.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	zines, total, err := handler.zineService.ListMine(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, zines, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// get returns one owned zine.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	zine, err := handler.zineService.Get(request.Context(), userID, chi.URLParam(request, "zineID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, zine)
}

/*
Update applies metadata and visibility changes to an owned zine.

PATCH /api/v1/zines/{zineID}

Response:
  - 200: Zine: Updated zine
  - 400: ErrInvalidJSON: Validation failure (including a missing password
    when switching to PASSWORD visibility)
  - 403: ErrForbidden: Caller does not own the zine
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, TitleMaxLength)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, DescriptionMaxLength)
	}
	if input.Visibility != nil {
		validator.OneOf(FieldVisibility, *input.Visibility, Visibilities...)
	}
	if input.Password != nil && *input.Password != "" {
		validator.MinLen(FieldPassword, *input.Password, PasswordMinLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updateInput := UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Password:    input.Password,
	}
	if input.Visibility != nil {
		visibility := Visibility(*input.Visibility)
		updateInput.Visibility = &visibility
	}

	zine, err := handler.zineService.Update(request.Context(), userID, chi.URLParam(request, "zineID"), updateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, zine)
}

// delete removes an owned zine and everything under it.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.zineService.Delete(request.Context(), userID, chi.URLParam(request, "zineID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
