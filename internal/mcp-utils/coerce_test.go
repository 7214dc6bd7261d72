package mcputils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CoerceBindArguments:
// - Native JSON types bind directly
// - Stringified numbers, booleans, arrays and objects are decoded
// - Comma separated strings fill slices; invalid JSON is kept as a single element
// - Durations parse from strings
// - Missing and null arguments leave zero values
// - Type mismatches wrap ErrInvalidArguments

type mockArgumentGetter struct {
	args map[string]interface{}
}

func (m *mockArgumentGetter) GetArguments() map[string]interface{} {
	return m.args
}

type structureArgs struct {
	RootPath     string   `json:"root_path"`
	MaxDepth     int      `json:"max_depth,omitempty"`
	IncludeSizes bool     `json:"include_sizes,omitempty"`
	Patterns     []string `json:"patterns,omitempty"`
}

func bind[T any](t *testing.T, args map[string]interface{}) (T, error) {
	t.Helper()
	var out T
	err := CoerceBindArguments(&mockArgumentGetter{args: args}, &out)
	return out, err
}

func TestCoerceBindArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]interface{}
		want structureArgs
	}{
		{
			name: "native types",
			args: map[string]interface{}{"root_path": "svc", "max_depth": 4, "include_sizes": true, "patterns": []string{"*.java"}},
			want: structureArgs{RootPath: "svc", MaxDepth: 4, IncludeSizes: true, Patterns: []string{"*.java"}},
		},
		{
			name: "float from JSON number",
			args: map[string]interface{}{"max_depth": float64(2)},
			want: structureArgs{MaxDepth: 2},
		},
		{
			name: "stringified values",
			args: map[string]interface{}{"max_depth": "5", "include_sizes": "true", "patterns": `["*.java", "*.yml"]`},
			want: structureArgs{MaxDepth: 5, IncludeSizes: true, Patterns: []string{"*.java", "*.yml"}},
		},
		{
			name: "comma separated slice",
			args: map[string]interface{}{"patterns": "*.java,*.xml"},
			want: structureArgs{Patterns: []string{"*.java", "*.xml"}},
		},
		{
			name: "invalid JSON kept",
			args: map[string]interface{}{"patterns": "[*.java"},
			want: structureArgs{Patterns: []string{"[*.java"}},
		},
		{
			name: "nulls and empty strings",
			args: map[string]interface{}{"root_path": "", "max_depth": nil, "include_sizes": nil},
			want: structureArgs{},
		},
		{
			name: "missing arguments",
			args: nil,
			want: structureArgs{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := bind[structureArgs](t, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceBindArguments_EmptyArray(t *testing.T) {
	t.Parallel()

	got, err := bind[structureArgs](t, map[string]interface{}{"patterns": "[]"})
	require.NoError(t, err)
	assert.Empty(t, got.Patterns)
}

func TestCoerceBindArguments_Composite(t *testing.T) {
	t.Parallel()

	type callArgs struct {
		Options map[string]interface{} `json:"options"`
		Timeout time.Duration          `json:"timeout"`
		Matrix  [][]string             `json:"matrix"`
		Name    string                 `json:"name"`
	}

	// Test: objects, durations, nested arrays and weak string conversion
	got, err := bind[callArgs](t, map[string]interface{}{
		"options": `{"recursive": true, "depth": 2}`,
		"timeout": "1m30s",
		"matrix":  `[["a", "b"], ["c"]]`,
		"name":    123,
	})
	require.NoError(t, err)
	assert.Equal(t, true, got.Options["recursive"])
	assert.Equal(t, float64(2), got.Options["depth"])
	assert.Equal(t, 90*time.Second, got.Timeout)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, got.Matrix)
	assert.Equal(t, "123", got.Name)
}

func TestCoerceBindArguments_Errors(t *testing.T) {
	t.Parallel()

	// Test: a value that cannot become an int
	_, err := bind[structureArgs](t, map[string]interface{}{"max_depth": "deep"})
	assert.ErrorIs(t, err, ErrInvalidArguments)

	// Test: a map where a string is expected
	_, err = bind[structureArgs](t, map[string]interface{}{"root_path": map[string]interface{}{"a": 1}})
	assert.ErrorIs(t, err, ErrInvalidArguments)
}
