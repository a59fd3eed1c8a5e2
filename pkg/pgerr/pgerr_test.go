package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: CodeExclusionViolation, Constraint: "appointments_no_overlap"})

	assert.True(t, IsExclusionViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(wrapped))
	assert.Equal(t, "appointments_no_overlap", Constraint(wrapped))

	assert.True(t, IsRetryable(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsRetryable(&pq.Error{Code: CodeDeadlockDetected}))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.Equal(t, "", Code(nil))
}
