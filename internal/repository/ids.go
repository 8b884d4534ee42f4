package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID bridges the opaque string ids used at the API boundary to the
// store-native ObjectID. Every boundary crossing goes through here so a
// malformed id is always a client error, never a server fault.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
