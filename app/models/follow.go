package models

import "errors"

// Validate checks if the follow edge meets all validation requirements.
// Self-follow edges are rejected here so no storage backend can accept one.
func (f *Follow) Validate() error {
	if err := validate.Struct(f); err != nil {
		return err
	}

	if f.User == f.Author {
		return errors.New("user cannot follow themselves")
	}

	return nil
}
