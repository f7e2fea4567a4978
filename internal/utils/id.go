// Package utils provides common utility functions for uppraisal.
//
// This file implements run identifiers. Every upload run gets a UUID so that
// log lines, printed results and persisted result files can be correlated
// after the fact, which matters because a single run can span many minutes
// of job polling.
package utils

import (
	"github.com/google/uuid"
)

// ShortIDLength is the number of characters kept by TruncateID.
const ShortIDLength = 8

// NewRunID creates a random identifier for one upload or listing run.
func NewRunID() string {
	return uuid.NewString()
}

// TruncateID shortens an identifier for human-facing output. IDs shorter than
// ShortIDLength are returned unchanged.
func TruncateID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}
