package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "matchMachineReadable",
			args:       []string{"match", "-m"},
			stdin:      "1,a\n2,b\n",
			wantCode:   0,
			wantStdout: "string,float,int,\nstring,\n",
		},
		{
			name:       "assertStrict",
			args:       []string{"assert", "int,int", "--strict", "-m"},
			stdin:      "1,a\n",
			wantCode:   3,
			wantStdout: "0:1\n",
		},
		{
			name:       "threadCount",
			args:       []string{"match", "--max-threads", "0"},
			stdin:      "1\n",
			wantCode:   1,
			wantStderr: "The thread count must be bigger than 0\n",
		},
		{
			name:     "usage",
			args:     []string{"assert"},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr.String())
			if tt.wantStdout != "" {
				assert.Equal(t, tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" {
				assert.Equal(t, tt.wantStderr, stderr.String())
			}
		})
	}
}
