package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "request_id", string(RequestIDKey))
	assert.Equal(t, "actor", string(ActorKey))
}

func TestWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		expected  func(string) bool
	}{
		{
			name:      "Valid request ID",
			requestID: "req-123-456",
			expected: func(result string) bool {
				return result == "req-123-456"
			},
		},
		{
			name:      "Empty request ID - should generate UUID",
			requestID: "",
			expected: func(result string) bool {
				_, err := uuid.Parse(result)
				return err == nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithRequestID(context.Background(), tt.requestID)
			assert.True(t, tt.expected(GetRequestID(ctx)))
		})
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestActor(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ctx := WithActor(context.Background(), Actor{ID: "dispatcher-1", Role: "dispatcher"})

		actor, ok := GetActor(ctx)

		assert.True(t, ok)
		assert.Equal(t, "dispatcher-1", actor.ID)
		assert.Equal(t, "dispatcher", actor.Role)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := GetActor(context.Background())
		assert.False(t, ok)
	})

	t.Run("empty id is not an actor", func(t *testing.T) {
		ctx := WithActor(context.Background(), Actor{Role: "dispatcher"})
		_, ok := GetActor(ctx)
		assert.False(t, ok)
	})
}
