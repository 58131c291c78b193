package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// stubREPL records the config the REPL would have started with.
func stubREPL(t *testing.T) **config.Config {
	t.Helper()
	var got *config.Config
	orig := startREPL
	startREPL = func(ctx context.Context, cfg *config.Config, log logging.Logger) error {
		got = cfg
		return nil
	}
	t.Cleanup(func() { startREPL = orig })
	return &got
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gophblog", cmd.Use)

	for _, name := range []string{"repl", "posts", "records", "reset", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestRootCommand_DefaultsToREPL(t *testing.T) {
	got := stubREPL(t)

	_, err := execute(t, "-s", "memory", "-l", "debug")
	require.NoError(t, err)
	require.NotNil(t, *got)
	assert.Equal(t, "memory", (*got).StorageDriver)
	assert.Equal(t, "debug", (*got).LogLevel)
}

func TestREPLCommand(t *testing.T) {
	got := stubREPL(t)

	_, err := execute(t, "repl", "-demo=false", "-auth-delay", "0s")
	require.NoError(t, err)
	require.NotNil(t, *got)
	assert.False(t, (*got).DemoLogin)
	assert.Zero(t, (*got).AuthDelay)
}

func TestRootCommand_Errors(t *testing.T) {
	got := stubREPL(t)

	_, err := execute(t, "bogus")
	assert.ErrorContains(t, err, "unknown arguments")

	_, err = execute(t, "-auth-delay", "soon")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = execute(t, "-log", "syslog")
	assert.ErrorContains(t, err, "unknown log backend")

	assert.Nil(t, *got)
}

func TestRootCommand_Help(t *testing.T) {
	got := stubREPL(t)

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "-fetch-delay")
	assert.Nil(t, *got)
}

func TestPostsCommand(t *testing.T) {
	base := []string{"posts", "-s", "memory", "-fetch-delay", "0s"}

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, append(base, "--format", "json")...)
		require.NoError(t, err)

		var list []models.Post
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Len(t, list, 1)
		assert.Equal(t, models.SeedPostTitle, list[0].Title)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, append(base, "-format=yaml")...)
		require.NoError(t, err)
		assert.Contains(t, out, "title: "+models.SeedPostTitle)
	})

	t.Run("text by default", func(t *testing.T) {
		out, err := execute(t, base...)
		require.NoError(t, err)
		assert.Contains(t, out, "By Admin on")
	})

	t.Run("author filter", func(t *testing.T) {
		out, err := execute(t, append(base, "--format", "json", "--author", "nobody")...)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", out)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := execute(t, append(base, "--format", "xml")...)
		assert.ErrorContains(t, err, `invalid format "xml"`)
	})

	t.Run("stray argument", func(t *testing.T) {
		_, err := execute(t, append(base, "extra")...)
		assert.ErrorContains(t, err, "unknown arguments")
	})

	t.Run("help", func(t *testing.T) {
		out, err := execute(t, "posts", "-h")
		require.NoError(t, err)
		assert.Contains(t, out, "--format")
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: N/A")
}

func TestParsePostsOptions(t *testing.T) {
	opts, err := parsePostsOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, PostsOptions{Format: FormatText}, opts)

	opts, err = parsePostsOptions([]string{"--author", "alice", "--format=yaml"})
	require.NoError(t, err)
	assert.Equal(t, PostsOptions{Format: FormatYAML, Author: "alice"}, opts)

	_, err = parsePostsOptions([]string{"--unknown"})
	assert.Error(t, err)
}
