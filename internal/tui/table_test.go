package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testColumns() []TableColumn {
	return []TableColumn{
		{Name: "KEY", Width: 24},
		{Name: "VALUE", Width: 20},
		{Name: "ORIGIN", Width: 12},
	}
}

func TestTable_WriteHeaderAndRows(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	var buf bytes.Buffer
	table := NewTable(&buf, testColumns())

	table.WriteHeader()
	table.WriteRow("llm.default_model", "gpt-4o", "env")
	table.WriteRow("jira.enabled", "true", "project_file")

	got := buf.String()
	assert.Contains(t, got, "KEY")
	assert.Contains(t, got, "ORIGIN")
	assert.Contains(t, got, "llm.default_model")
	assert.Contains(t, got, "project_file")
}

func TestTable_TruncatesOverlongValues(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	var buf bytes.Buffer
	table := NewTable(&buf, []TableColumn{{Name: "V", Width: 8}})

	table.WriteRow("averylongvaluethatdoesnotfit")

	got := buf.String()
	assert.Contains(t, got, "…")
	assert.NotContains(t, got, "averylongvaluethatdoesnotfit")
}

func TestTable_MissingValuesRenderEmpty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	var buf bytes.Buffer
	table := NewTable(&buf, testColumns())

	table.WriteRow("only.key")

	assert.Contains(t, buf.String(), "only.key")
}
