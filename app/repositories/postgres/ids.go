package postgres

import "github.com/google/uuid"

func newMediaID() string {
	return uuid.NewString()
}
