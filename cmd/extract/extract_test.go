package extract_test

import (
	"testing"

	"taxmaster/statement-extractor/cmd/extract"
	"taxmaster/statement-extractor/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCommand_Metadata(t *testing.T) {
	assert.Equal(t, "extract", extract.Cmd.Use)
	assert.Contains(t, extract.Cmd.Short, "statement PDF")
	assert.NotNil(t, extract.Cmd.RunE)
}

func TestExtractCommand_RequiresInput(t *testing.T) {
	original := root.SharedFlags.Input
	defer func() { root.SharedFlags.Input = original }()

	root.SharedFlags.Input = ""
	err := extract.Cmd.RunE(extract.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file is required")
}

func TestExtractCommand_MissingFile(t *testing.T) {
	original := root.SharedFlags.Input
	defer func() { root.SharedFlags.Input = original }()

	root.SharedFlags.Input = "does-not-exist.pdf"
	err := extract.Cmd.RunE(extract.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input file")
}
