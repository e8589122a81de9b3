package service

import (
	"strings"

	"github.com/spec-kit/records-service/internal/domain"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// ParseSort parses a sort expression such as "-salary name" or
// "price,-NAME". Keys outside allowed are rejected. An empty expression
// yields fallback.
func ParseSort(expr string, allowed map[string]struct{}, fallback string) ([]domain.SortField, error) {
	tokens := strings.FieldsFunc(expr, func(r rune) bool { return r == ' ' || r == ',' })
	if len(tokens) == 0 {
		tokens = strings.Fields(fallback)
	}

	fields := make([]domain.SortField, 0, len(tokens))
	for _, token := range tokens {
		field := domain.SortField{Field: token}
		switch {
		case strings.HasPrefix(token, "-"):
			field = domain.SortField{Field: token[1:], Desc: true}
		case strings.HasPrefix(token, "+"):
			field.Field = token[1:]
		}
		if _, ok := allowed[field.Field]; !ok {
			return nil, apperrors.NewValidationError("unsupported sort field", map[string]any{"sort": token})
		}
		fields = append(fields, field)
	}
	return fields, nil
}
