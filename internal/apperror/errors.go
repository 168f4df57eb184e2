package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Validation is returned when user input fails validation. Fields maps the
// offending input field to a user-facing message.
type Validation struct {
	Message string
	Fields  map[string]string
}

func (e *Validation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// NewValidation builds a Validation error, returning nil when fields is empty
// so callers can write `if err := apperror.NewValidation(...); err != nil`.
func NewValidation(message string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Validation{Message: message, Fields: fields}
}

// NotFound is returned when a resource does not exist.
type NotFound struct {
	Resource string
	ID       string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Conflict is returned on unique-key collisions.
type Conflict struct {
	Message string
}

func (e *Conflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// InvalidTransition is returned when a state change is not allowed.
type InvalidTransition struct {
	From string
	To   string
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but lacks the admin
	// role; clients must drop their session.
	ErrForbidden = errors.New("forbidden")
)

// Respond writes err as a JSON error body with the matching status code.
func Respond(c *fiber.Ctx, err error) error {
	var (
		validation *Validation
		notFound   *NotFound
		conflict   *Conflict
		transition *InvalidTransition
		fiberErr   *fiber.Error
	)

	switch {
	case errors.As(err, &validation):
		body := fiber.Map{"code": "VALIDATION", "message": validation.Error()}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"code": "NOT_FOUND", "message": "العنصر غير موجود", "detail": notFound.Error()})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"code": "CONFLICT", "message": conflict.Error()})
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"code": "INVALID_TRANSITION", "message": "لا يمكن تغيير حالة الطلب", "detail": transition.Error()})
	case errors.Is(err, ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"code": "UNAUTHORIZED", "message": "يرجى تسجيل الدخول"})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"code": "FORBIDDEN", "message": "ليس لديك صلاحية الوصول", "signOut": true})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"code": "HTTP", "message": fiberErr.Message})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"code": "INTERNAL", "message": "حدث خطأ، يرجى المحاولة مرة أخرى", "detail": err.Error()})
	}
}
