package files

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  ValidationError
		want string
	}{
		{
			name: "with hint",
			err: ValidationError{
				Field:   "pattern",
				Value:   "[",
				Message: "invalid glob pattern",
				Hint:    "Use *.java",
			},
			want: `pattern: invalid glob pattern (value: "["). Use *.java`,
		},
		{
			name: "without hint",
			err: ValidationError{
				Field:   "search_term",
				Value:   "",
				Message: "search term is required",
			},
			want: `search_term: search term is required (value: "")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	var none ValidationErrors
	assert.Equal(t, "no validation errors", none.Error())
	assert.NoError(t, none.Err())
	assert.False(t, none.HasErrors())

	var two ValidationErrors
	two.Add("directory", "", "path is required", "")
	two.Add("pattern", "[", "invalid glob pattern", "")
	require.True(t, two.HasErrors())
	assert.Equal(t, "2 validation errors:\n  1. directory: path is required (value: \"\")\n  2. pattern: invalid glob pattern (value: \"[\")\n", two.Error())

	var target ValidationErrors
	assert.True(t, errors.As(two.Err(), &target))
	assert.Len(t, target, 2)
}

func TestValidationErrors_Checks(t *testing.T) {
	t.Parallel()

	var verrs ValidationErrors
	verrs.requirePath("file_path", "  ")
	verrs.requirePath("file_path", "a\x00b")
	verrs.requirePath("file_path", "src/Main.java")
	verrs.checkPattern("pattern", "")
	verrs.checkPattern("pattern", "**/*.{yml,yaml}")
	verrs.checkPattern("pattern", "[a-")

	require.Len(t, verrs, 3)
	assert.Equal(t, "path is required", verrs[0].Message)
	assert.Equal(t, "path contains a NUL byte", verrs[1].Message)
	assert.Equal(t, "invalid glob pattern", verrs[2].Message)
}
