package funcmcp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Tool: "send_mail", Missing: []string{"subject", "to"}}
	assert.Equal(t, `funcmcp: tool "send_mail": missing required arguments: subject, to`, err.Error())
}

func TestValidationErrorSortsMissing(t *testing.T) {
	err := &ValidationError{Tool: "t", Missing: []string{"zz", "aa"}}
	assert.Contains(t, err.Error(), "aa, zz")
}

func TestLookupErrorMessage(t *testing.T) {
	err := &LookupError{Name: "frobincate", Available: []string{"frobnicate", "search"}}
	assert.Contains(t, err.Error(), `"frobincate"`)
	assert.Contains(t, err.Error(), "frobnicate, search")
}

func TestConnectionErrorUnwrap(t *testing.T) {
	cause := errors.New("dial refused")
	err := &ConnectionError{Target: "npx server", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "npx server")
}

func TestConfigErrorMessage(t *testing.T) {
	assert.Equal(t, "funcmcp: bad transform", (&ConfigError{Reason: "bad transform"}).Error())

	cause := errors.New("no such arg")
	withCause := &ConfigError{Reason: "bad transform", Err: cause}
	assert.ErrorIs(t, withCause, cause)
}
