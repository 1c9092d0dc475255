// Copyright (c) 2026 Zinery. All rights reserved.

package publisher

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zinery/zinery/internal/platform/middleware"
	requestutil "github.com/zinery/zinery/internal/platform/request"
	"github.com/zinery/zinery/internal/platform/respond"
	"github.com/zinery/zinery/internal/platform/validate"
)

// Handler implements publisher-profile HTTP endpoints.
type Handler struct {
	publisherService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{publisherService: service}
}

// Routes returns a [chi.Router] configured with publisher routes.
//
// # Endpoints
//   - POST  /          : Creates the caller's publisher profile.
//   - GET   /me        : Returns the caller's own profile.
//   - PATCH /me        : Updates the caller's profile.
//   - GET   /{handle}  : Returns a public profile by handle.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{handle}", handler.getByHandle)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Get("/me", handler.getMine)
		r.Patch("/me", handler.update)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

type updateRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}

/*
Create opens the caller's publisher profile.

POST /api/v1/publishers

Response:
  - 201: Publisher: Created profile
  - 409: ErrConflict: Handle taken or profile already exists
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
	validator.Required(FieldHandle, input.Handle).
		MinLen(FieldHandle, input.Handle, HandleMinLength).
		MaxLen(FieldHandle, input.Handle, HandleMaxLength).
		MaxLen(FieldDisplayName, input.DisplayName, DisplayNameMaxLength).
		MaxLen(FieldBio, input.Bio, BioMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.publisherService.Create(request.Context(), userID, CreateInput{
		Handle:      input.Handle,
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, publisher)
}

// getMine returns the caller's own publisher profile.
func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.publisherService.GetMine(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, publisher)
}

// getByHandle returns a public publisher profile.
func (handler *Handler) getByHandle(writer http.ResponseWriter, request *http.Request) {
	handle := chi.URLParam(request, "handle")

	publisher, err := handler.publisherService.GetByHandle(request.Context(), handle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, publisher)
}

/*
Update modifies the caller's publisher profile.

PATCH /api/v1/publishers/me

Response:
  - 200: Publisher: Updated profile
  - 404: ErrNotFound: Caller has no profile
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
	if input.DisplayName != nil {
		validator.Required(FieldDisplayName, *input.DisplayName).
			MaxLen(FieldDisplayName, *input.DisplayName, DisplayNameMaxLength)
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, BioMaxLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.publisherService.Update(request.Context(), userID, UpdateInput{
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, publisher)
}
