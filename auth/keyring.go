// Package auth keeps connector API tokens in the system keyring.
package auth

import (
	"errors"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

var service = constant.App + "-connectors"

// SetToken stores the token of a connector, replacing any previous one.
func SetToken(connectorID, token string) error {
	return keyring.Set(service, connectorID, token)
}

// Token returns the token of a connector, if one was stored.
func Token(connectorID string) (mo.Option[string], error) {
	token, err := keyring.Get(service, connectorID)
	if errors.Is(err, keyring.ErrNotFound) {
		return mo.None[string](), nil
	}
	if err != nil {
		return mo.None[string](), err
	}
	return mo.Some(token), nil
}

// DeleteToken forgets the token of a connector. Deleting a missing token is not an error.
func DeleteToken(connectorID string) error {
	err := keyring.Delete(service, connectorID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
