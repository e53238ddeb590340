package clients

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("unexpected EOF"), true},
		{errors.New("read: i/o timeout"), true},
		{errors.New("WRONGTYPE Operation against a key"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isConnectionError(tt.err))
	}
}
