package session

import (
	"errors"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/gateway"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/presentation"
)

// UserMessage turns an error from any service into the one-line notice
// a screen shows.
func UserMessage(err error) string {
	var genErr *gateway.GenerationError
	var storeErr *material.StorageError
	var matErr *material.ValidationError
	var accErr *account.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &genErr):
		return genErr.UserMessage()
	case errors.As(err, &storeErr):
		return storeErr.UserMessage()
	case errors.As(err, &matErr):
		return matErr.Message
	case errors.As(err, &accErr):
		return accErr.Message
	case errors.Is(err, presentation.ErrOffline):
		return "You're offline. Connect to the internet to generate new content."
	case errors.Is(err, presentation.ErrBusy):
		return "Please wait for the current request to finish."
	case errors.Is(err, material.ErrEmptyContent):
		return "Could not generate new content. Please try again."
	}
	return "Something went wrong. Please try again."
}
