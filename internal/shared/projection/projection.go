// Package projection holds the persistence metadata attached to read models.
package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Created returns metadata for a row first written at ts.
func Created(ts time.Time) Metadata {
	return Metadata{CreatedAt: ts, UpdatedAt: ts}
}

// Updated keeps CreatedAt and moves UpdatedAt to ts.
func (m Metadata) Updated(ts time.Time) Metadata {
	m.UpdatedAt = ts
	return m
}
