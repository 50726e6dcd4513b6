package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := NewError(KindUnauthorized, "create organization", "invalid username or password")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestError_IsThroughWrapping(t *testing.T) {
	inner := WrapError(KindTransport, "list organizations", errors.New("connection refused"))
	wrapped := fmt.Errorf("resolve org: %w", inner)

	assert.ErrorIs(t, wrapped, ErrTransport)
	assert.Equal(t, KindTransport, KindOf(wrapped))
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"op and message", NewError(KindIssueRejected, "issue key", "API key name taken"), "issue key: API key name taken"},
		{"op and cause", WrapError(KindPersistence, "write store", errors.New("disk full")), "write store: disk full"},
		{"kind only", &Error{Kind: KindVerification}, "verification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
}

func TestCredentialRecord_Redacted(t *testing.T) {
	rec := CredentialRecord{ID: 1, Key: "abc123", Name: "acme_apikey"}

	red := rec.Redacted()

	assert.Empty(t, red.Key)
	assert.Equal(t, "acme_apikey", red.Name)
	assert.Equal(t, "abc123", rec.Key)
}
