package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsListsTypes(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewFieldsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	output := buf.String()
	for _, name := range []string{"Product", "Category", "Catalog", "Promotion", "Customer", "Configuration"} {
		assert.Contains(t, output, name)
	}
}

func TestFieldsForType(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewFieldsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"Promotion"})

	require.NoError(t, cmd.Execute())
	output := buf.String()
	assert.Contains(t, output, "Promotion (search dialect)")
	assert.Contains(t, output, "State")
	assert.Contains(t, output, "ACTIVE, DISABLED, EXPIRED")
}

func TestFieldsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewFieldsCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"Configuration"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result TypeFields
	require.NoError(t, json.Unmarshal(payload, &result))
	assert.Equal(t, "Configuration", string(result.Type))
	assert.Equal(t, "sql", string(result.Dialect))
	assert.Len(t, result.Fields, 3)
}

func TestFieldsUnknownType(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewFieldsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"Widget"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Widget")
}
