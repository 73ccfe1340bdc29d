package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "import-quiz"} {
		assert.True(t, names[want], want)
	}
}

func TestImportQuizRequiresCourse(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"import-quiz", "quiz.csv"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "course")
}
