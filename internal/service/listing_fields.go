package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spec-kit/records-service/internal/domain"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

var listingStringFieldSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(domain.ListingStringFields))
	for _, f := range domain.ListingStringFields {
		set[f] = struct{}{}
	}
	return set
}()

// NormalizeListingFields keeps the known listing attributes of input and
// casts scalar values to strings. The system id and unknown keys are
// dropped. Images accepts a list or a single value.
func NormalizeListingFields(input map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(input))
	details := map[string]any{}

	for key, value := range input {
		switch {
		case key == domain.ListingImagesField:
			images, err := castImages(value)
			if err != nil {
				details[key] = err.Error()
				continue
			}
			out[key] = images
		case isListingStringField(key):
			if value == nil {
				out[key] = nil
				continue
			}
			s, err := castString(value)
			if err != nil {
				details[key] = err.Error()
				continue
			}
			out[key] = s
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Validation Error", details)
	}
	return out, nil
}

func isListingStringField(key string) bool {
	_, ok := listingStringFieldSet[key]
	return ok
}

func castString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("must be a string, got %T", value)
}

func castImages(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		images := make([]string, 0, len(v))
		for i, item := range v {
			s, err := castString(item)
			if err != nil {
				return nil, fmt.Errorf("item %d %w", i, err)
			}
			images = append(images, s)
		}
		return images, nil
	}
	s, err := castString(value)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

// listingFromFields decodes normalized fields into a listing.
func listingFromFields(fields map[string]any) (*domain.Listing, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode listing fields: %w", err)
	}
	var listing domain.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("decode listing fields: %w", err)
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}
	return &listing, nil
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
