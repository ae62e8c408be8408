// Package service holds the business rules behind the HTTP API.
package service

import (
	"fmt"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts a hex id, reporting ErrInvalidInput for malformed values.
func ParseID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s: %w", field, domain.ErrInvalidInput)
	}
	return id, nil
}

func invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, domain.ErrInvalidInput)
}
