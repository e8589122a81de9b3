package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
)

// resolveDualKey runs byAppID with the trimmed key and, only when that finds
// nothing and the key is a system identifier, byOID with the canonical form.
// A failing secondary attempt is logged and reported as notFound.
func resolveDualKey[T any](ctx context.Context, logger *zap.Logger, rawKey string, notFound error, byAppID, byOID func(context.Context, string) (T, error)) (T, error) {
	var zero T
	key := strings.TrimSpace(rawKey)
	if key == "" {
		return zero, notFound
	}

	result, err := byAppID(ctx, key)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, notFound) {
		return zero, err
	}

	oid, ok := domain.ParseObjectID(key)
	if !ok {
		return zero, notFound
	}
	result, err = byOID(ctx, oid)
	if err != nil {
		if !errors.Is(err, notFound) {
			logger.Warn("system id lookup failed", zap.String("key", key), zap.Error(err))
		}
		return zero, notFound
	}
	return result, nil
}
