package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/poseidon-api/internal/auth"
	"github.com/spec-kit/poseidon-api/internal/domain"
	"github.com/spec-kit/poseidon-api/internal/events"
	"github.com/spec-kit/poseidon-api/internal/repository"
	apperrors "github.com/spec-kit/poseidon-api/pkg/util/errorutil"
)

// Payload is the wire form of an entity T.
type Payload[T any] interface {
	Validate() error
	// Key returns the id carried in the body.
	Key() int64
	// Apply copies the non-key fields onto an entity.
	Apply(*T)
}

// CRUDHandler serves list/get/create/update/delete for one entity type.
type CRUDHandler[T any, D Payload[T]] struct {
	resource   string
	repo       repository.Repository[T, int64]
	toDTO      func(T) D
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCRUDHandler builds a handler for the entities mounted under /api/{resource}.
func NewCRUDHandler[T any, D Payload[T]](
	resource string,
	repo repository.Repository[T, int64],
	toDTO func(T) D,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *CRUDHandler[T, D] {
	return &CRUDHandler[T, D]{
		resource:   resource,
		repo:       repo,
		toDTO:      toDTO,
		dispatcher: dispatcher,
		logger:     logger.With(zap.String("resource", resource)),
	}
}

// Resource is the route segment the handler is mounted on.
func (h *CRUDHandler[T, D]) Resource() string {
	return h.resource
}

// Mount registers the handler's routes on r.
func (h *CRUDHandler[T, D]) Mount(r fiber.Router) {
	group := r.Group("/" + h.resource)
	group.Get("", h.List)
	group.Get("/:id", h.Get)
	group.Post("", h.Create)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

// List handles GET /api/{resource}.
func (h *CRUDHandler[T, D]) List(c *fiber.Ctx) error {
	entities, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]D, 0, len(entities))
	for _, e := range entities {
		out = append(out, h.toDTO(e))
	}
	h.logger.Info("listed entities", zap.Int("count", len(out)))
	return c.JSON(out)
}

// Get handles GET /api/{resource}/:id.
func (h *CRUDHandler[T, D]) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	entity, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return h.notFoundOr(err, id)
	}
	return c.JSON(h.toDTO(*entity))
}

// Create handles POST /api/{resource}.
func (h *CRUDHandler[T, D]) Create(c *fiber.Ctx) error {
	var payload D
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := payload.Validate(); err != nil {
		return validationError("invalid "+h.resource+" payload", err)
	}

	var entity T
	payload.Apply(&entity)

	created, err := h.repo.Add(c.UserContext(), entity)
	if err != nil {
		return err
	}
	body := h.toDTO(*created)
	id := body.Key()

	h.logger.Info("entity created", zap.Int64("id", id))
	h.publish(c, events.EventEntityCreated, id)

	c.Location(fmt.Sprintf("/api/%s/%d", h.resource, id))
	return c.Status(http.StatusCreated).JSON(body)
}

// Update handles PUT /api/{resource}/:id. The stored entity is fetched, the
// payload merged onto it, then persisted.
func (h *CRUDHandler[T, D]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var payload D
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if payload.Key() != id {
		h.logger.Warn("update rejected: id mismatch", zap.Int64("route_id", id), zap.Int64("body_id", payload.Key()))
		return apperrors.NewValidationError("id mismatch", map[string]any{"route_id": id, "body_id": payload.Key()})
	}
	if err := payload.Validate(); err != nil {
		return validationError("invalid "+h.resource+" payload", err)
	}

	entity, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return h.notFoundOr(err, id)
	}
	payload.Apply(entity)

	if err := h.repo.Update(c.UserContext(), entity); err != nil {
		return err
	}

	h.logger.Info("entity updated", zap.Int64("id", id))
	h.publish(c, events.EventEntityUpdated, id)
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /api/{resource}/:id.
func (h *CRUDHandler[T, D]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	removed, err := h.repo.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !removed {
		h.logger.Warn("delete rejected: not found", zap.Int64("id", id))
		return apperrors.NewNotFound(h.resource, map[string]any{"id": id})
	}

	h.logger.Info("entity deleted", zap.Int64("id", id))
	h.publish(c, events.EventEntityDeleted, id)
	return c.SendStatus(http.StatusNoContent)
}

func (h *CRUDHandler[T, D]) notFoundOr(err error, id int64) error {
	if errors.Is(err, domain.ErrNotFound) {
		h.logger.Warn("entity not found", zap.Int64("id", id))
		return apperrors.NewNotFound(h.resource, map[string]any{"id": id})
	}
	return err
}

func (h *CRUDHandler[T, D]) publish(c *fiber.Ctx, eventType events.EventType, id int64) {
	if h.dispatcher == nil {
		return
	}
	event := events.Event{
		Type:     eventType,
		Entity:   h.resource,
		EntityID: strconv.FormatInt(id, 10),
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		event.Actor = principal.Email
	}
	if err := h.dispatcher.Publish(c.UserContext(), event); err != nil {
		h.logger.Warn("audit publish failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
