// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.Len(t, c.Categories, 7)
	assert.Equal(t, 1, c.Categories[0].Number)
	assert.Equal(t, "Economía y Empleo", c.Categories[0].Name)
	for _, cat := range c.Categories {
		assert.NotEmpty(t, cat.Questions, cat.Name)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: `
categories:
  - numero: 1
    nombre: Economía
    preguntas: ["a", "b"]
  - numero: 2
    nombre: Salud
    preguntas: ["c"]
`,
		},
		{name: "empty", yaml: `categories: []`, wantErr: true},
		{name: "malformed yaml", yaml: `categories: [`, wantErr: true},
		{
			name: "missing name",
			yaml: `
categories:
  - numero: 1
    preguntas: ["a"]
`,
			wantErr: true,
		},
		{
			name: "zero number",
			yaml: `
categories:
  - numero: 0
    nombre: Salud
`,
			wantErr: true,
		},
		{
			name: "duplicate number",
			yaml: `
categories:
  - numero: 1
    nombre: Salud
  - numero: 1
    nombre: Economía
`,
			wantErr: true,
		},
		{
			name: "duplicate name",
			yaml: `
categories:
  - numero: 1
    nombre: Salud
  - numero: 2
    nombre: Salud
`,
			wantErr: true,
		},
		{
			name: "empty statement",
			yaml: `
categories:
  - numero: 1
    nombre: Salud
    preguntas: [""]
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCatalog)
				return
			}
			require.NoError(t, err)
			assert.Len(t, c.Categories, 2)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - numero: 3
    nombre: Educación
    preguntas: ["x"]
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Categories, 1)
	assert.Equal(t, "Educación", c.Categories[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
