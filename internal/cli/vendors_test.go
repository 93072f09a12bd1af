package cli

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorsCommandTable(t *testing.T) {
	viper.Set("output", "text")

	output, err := executeCommand(rootCmd, "vendors")
	require.NoError(t, err)

	assert.Contains(t, output, "VENDOR")
	assert.Contains(t, output, "VERSION FLAG")
	assert.Contains(t, output, "azul")
	assert.Contains(t, output, "latest only")
	assert.Contains(t, output, "Java (Azul Zulu)")
}

func TestVendorsCommandJSON(t *testing.T) {
	viper.Set("output", "json")
	defer viper.Set("output", "text")

	output, err := executeCommand(rootCmd, "vendors")
	require.NoError(t, err)

	assert.Contains(t, output, `"name": "azul"`)
	assert.Contains(t, output, `"display_name": "Java (Azul Zulu)"`)
	assert.Contains(t, output, `"name": "go"`)
	assert.Contains(t, output, `"accepts_version": false`)
	assert.Contains(t, output, `"accepts_version": true`)
}

func TestVendorsCommandYAML(t *testing.T) {
	viper.Set("output", "yaml")
	defer viper.Set("output", "text")

	output, err := executeCommand(rootCmd, "vendors")
	require.NoError(t, err)

	assert.Contains(t, output, "name: nodejs")
	assert.Contains(t, output, "display_name: Node.js (LTS)")
}
