package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewObjectID returns a fresh system identifier as 24 lowercase hex characters.
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// ParseObjectID reports whether s is exactly 24 hex characters and returns it
// in canonical lowercase form.
func ParseObjectID(s string) (string, bool) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}
