package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// listParams reads the shared pagination and sort query values. Unparsable
// numbers become zero, which the service replaces with defaults.
func listParams(c *fiber.Ctx) (page, limit int, sort string) {
	page = parseInt(c.Query("page"), 0)
	limit = parseInt(c.Query("limit"), 0)
	sort = c.Query("sortBy", c.Query("sort"))
	return page, limit, sort
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return def
	}
	return parsed
}

// parseBody decodes a JSON or urlencoded body into out. An empty body leaves
// out untouched.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return bodyError(err)
	}
	return nil
}

// decodeDocument reads a body as a loose key/value document. Urlencoded keys
// that repeat become lists.
func decodeDocument(c *fiber.Ctx) (map[string]any, error) {
	doc := map[string]any{}
	if len(c.Body()) == 0 {
		return doc, nil
	}

	switch {
	case strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON):
		if err := json.Unmarshal(c.Body(), &doc); err != nil {
			return nil, bodyError(err)
		}
	case strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			addFormValue(doc, string(key), string(value))
		})
	default:
		return nil, bodyError(fiber.ErrUnprocessableEntity)
	}
	return doc, nil
}

func addFormValue(doc map[string]any, key, value string) {
	switch existing := doc[key].(type) {
	case nil:
		doc[key] = value
	case string:
		doc[key] = []string{existing, value}
	case []string:
		doc[key] = append(existing, value)
	}
}

// bodyError explains why a body could not be decoded.
func bodyError(err error) error {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return apperrors.NewMalformedBody("request body must be a JSON object", err)
		}
		return apperrors.NewMalformedBody(fmt.Sprintf("%s must be of type %s", field, typeErr.Type), err)
	case errors.As(err, &syntaxErr):
		return apperrors.NewMalformedBody(fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset), err)
	case errors.Is(err, fiber.ErrUnprocessableEntity):
		return apperrors.NewMalformedBody("use application/json or application/x-www-form-urlencoded", err)
	}
	return apperrors.NewMalformedBody("request body could not be decoded", err)
}

// formValue returns a trimmed form value, or nil when it is blank.
func formValue(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.FormValue(key))
	if val == "" {
		return nil
	}
	return &val
}

// formMessage turns an error into the text shown on a form page. Lookup
// misses and malformed ids render missText. Server errors are returned for
// the error middleware.
func formMessage(err error, missText string) (string, error) {
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		return "", err
	}
	if missText != "" && (domainErr.Code == apperrors.CodeNotFound || domainErr.Code == apperrors.CodeInvalidID) {
		return missText, nil
	}
	if len(domainErr.Details) == 0 {
		return domainErr.Message, nil
	}
	parts := make([]string, 0, len(domainErr.Details))
	for _, v := range domainErr.Details {
		parts = append(parts, fmt.Sprint(v))
	}
	sort.Strings(parts)
	return domainErr.Message + ": " + strings.Join(parts, "; "), nil
}
