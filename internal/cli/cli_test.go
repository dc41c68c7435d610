package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// TestMain points HOME at an empty directory so that no user config file is
// picked up.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "csvtypes-home")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("HOME", home)
	code := m.Run()
	_ = os.RemoveAll(home)
	os.Exit(code)
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	assert.Equal(t, code, exitErr.Code)
	return exitErr
}

func TestMatch(t *testing.T) {
	path := writeFile(t, "table.csv", "id,name\n1,x\n2,y\n")

	res := execute(t, "", "match", path, "--header")
	require.NoError(t, res.err)

	want := "|     id |   name |\n" +
		"===================\n" +
		"| string | string |\n" +
		"|  float |        |\n" +
		"|    int |        |\n"
	assert.Equal(t, want, res.stdout)
}

func TestMatch_Stdin(t *testing.T) {
	res := execute(t, "1,a\n-2,b\n", "match", "-m", "--max-threads", "2")
	require.NoError(t, res.err)
	assert.Equal(t, "string,float,int,\nstring,\n", res.stdout)
}

func TestMatch_TypeFile(t *testing.T) {
	types := writeFile(t, "types", "bool (true|false)\n")
	input := "true,1\nfalse,2\n"

	res := execute(t, input, "match", "-m", "-c", types)
	require.NoError(t, res.err)
	assert.Equal(t, "string,bool,\nstring,float,int,\n", res.stdout)

	res = execute(t, input, "match", "-m", "-C", types)
	require.NoError(t, res.err)
	assert.Equal(t, "bool,\n\n", res.stdout)

	res = execute(t, input, "match", "-c", types, "-C", types)
	exitErr := requireExitCode(t, res.err, ExitUsage)
	assert.Contains(t, exitErr.Message, "--config-file-replace-default")
}

func TestMatch_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", `input:
  separator: ";"
  header: true
types:
  definitions:
    - name: bool
      pattern: (true|false)
`)

	res := execute(t, "a;b\ntrue;x\n", "match", "-m", "--config", cfg)
	require.NoError(t, res.err)
	assert.Equal(t, "string,bool,\nstring,\n", res.stdout)
}

func TestMatch_Env(t *testing.T) {
	t.Setenv("CSVTYPES_INPUT_SEPARATOR", ";")

	res := execute(t, "1;2\n", "match", "-m")
	require.NoError(t, res.err)
	assert.Equal(t, "string,float,int,\nstring,float,int,\n", res.stdout)

	// Flags win over env
	res = execute(t, "1;2\n", "match", "-m", "--separator", ",")
	require.NoError(t, res.err)
	assert.Equal(t, "string,\n", res.stdout)
}

func TestMatch_JSON(t *testing.T) {
	res := execute(t, "n\n7\n", "match", "--header", "--format", "json")
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"headers":["n"],"columns":[{"index":0,"header":"n","types":["string","float","int"]}]}`, res.stdout)
}

func TestMatch_Verbose(t *testing.T) {
	res := execute(t, "1\n", "match", "-v")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "match complete")
}

func TestAssert(t *testing.T) {
	path := writeFile(t, "table.csv", "id,name\n1,x\ny,2\n")

	res := execute(t, "", "assert", "int,string", path, "--header")
	require.NoError(t, res.err)
	assert.Equal(t, "1:0\n", res.stdout)
	assert.Equal(t, "These rows did not match: \n", res.stderr)

	res = execute(t, "1,x\n", "assert", "int, string")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "All rows matched\n", res.stderr)
}

func TestAssert_Grouping(t *testing.T) {
	input := "x,x\nx,x\n"

	res := execute(t, input, "assert", "int,int", "-m")
	require.NoError(t, res.err)
	assert.Equal(t, "0:0\n1:0\n0:1\n1:1\n", res.stdout)

	res = execute(t, input, "assert", "int,int", "-m", "--group-by-row")
	require.NoError(t, res.err)
	assert.Equal(t, "0:0:1\n1:0:1\n", res.stdout)
}

func TestAssert_Strict(t *testing.T) {
	res := execute(t, "1,a\n", "assert", "int,int", "-m", "--strict")
	exitErr := requireExitCode(t, res.err, ExitMismatches)
	assert.Empty(t, exitErr.Message)
	assert.Equal(t, "0:1\n", res.stdout)

	res = execute(t, "1,2\n", "assert", "int,int", "--strict")
	require.NoError(t, res.err)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
		msg   string
	}{
		{"threadCount", "1,2", []string{"assert", "int,int", "--max-threads", "0"}, ExitFailure, "The thread count must be bigger than 0"},
		{"columnCount", "1,2", []string{"assert", "int"}, ExitFailure, "The given number of types does not match the number of columns"},
		{"undefinedType", "1,2", []string{"assert", "int,date"}, ExitFailure, "The type date is not defined"},
		{"badSeparator", "1", []string{"match", "--separator", "ab"}, ExitUsage, "separator"},
		{"badFormat", "1", []string{"match", "--format", "xml"}, ExitUsage, "unknown output format"},
		{"missingFile", "", []string{"match", "/nonexistent/table.csv"}, ExitFailure, "open file"},
		{"unknownFlag", "", []string{"match", "--bogus"}, ExitUsage, "unknown flag"},
		{"missingArgs", "", []string{"assert"}, ExitUsage, "arg"},
		{"tooManyArgs", "", []string{"match", "a", "b"}, ExitUsage, "arg"},
		{"unknownCommand", "", []string{"frobnicate"}, ExitUsage, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.stdin, tt.args...)
			exitErr := requireExitCode(t, res.err, tt.code)
			assert.Contains(t, exitErr.Message, tt.msg)
		})
	}
}

func TestConfigShow(t *testing.T) {
	res := execute(t, "", "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "No configuration file found")
	assert.Contains(t, res.stdout, "separator:")
	assert.Contains(t, res.stdout, "workers: 1")
	assert.Contains(t, res.stdout, "grouping: contiguous")
}

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	res := execute(t, "", "config", "init")
	require.NoError(t, res.err)

	path := filepath.Join(home, ".csvtypes", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "concurrency:")
	assert.Contains(t, res.stdout, path)

	// The written file is picked up by later runs
	res = execute(t, "", "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, path)

	res = execute(t, "", "config", "init")
	exitErr := requireExitCode(t, res.err, ExitFailure)
	assert.Contains(t, exitErr.Message, "already exists")
}

func TestVersion(t *testing.T) {
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "csvtypes "+Version+"\n", res.stdout)
}
