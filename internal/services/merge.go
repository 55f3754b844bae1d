package services

import "catalog/internal/models"

// Partial updates use pointer fields so "not supplied" (nil) is distinct
// from a legitimate zero value. orElse and orList implement the
// fallback-to-existing merge once, instead of repeating it per entity.

func orElse[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}

func orList(v []string, fallback models.StringList) models.StringList {
	if v != nil {
		return models.StringList(v)
	}
	return fallback
}
