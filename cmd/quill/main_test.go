package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	want := []string{
		"init", "add", "edit", "delete", "show", "list", "stats", "tags", "authors",
		"works", "export", "import", "backup", "restore", "journals", "log", "browse",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("journal"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestReadContent(t *testing.T) {
	content, err := readContent(strings.NewReader("ignored"), []string{"from arg"})
	require.NoError(t, err)
	assert.Equal(t, "from arg", content)

	content, err = readContent(strings.NewReader("line one\nline two\n"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", content)

	content, err = readContent(strings.NewReader("stdin\r\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "stdin", content)
}

func TestBuildPatch(t *testing.T) {
	cmd := newEditCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--note", "", "--add-tag", "经典", "--tags", "a,b"}))

	var flags editFlags
	flags.annotation = cmd.Flag("note").Value.String()
	flags.tags = []string{"a", "b"}
	flags.addTags = []string{"经典"}

	patch := buildPatch(cmd, flags)

	require.NotNil(t, patch.Annotation)
	assert.Equal(t, "", *patch.Annotation)
	require.NotNil(t, patch.Tags)
	assert.Equal(t, []string{"a", "b"}, *patch.Tags)
	assert.Equal(t, []string{"经典"}, patch.AddTags)
	assert.Nil(t, patch.Content)
	assert.Nil(t, patch.Author)
}
