package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	lg, err := New(Config{Level: "debug", Outputs: []string{OutputFile}, OutputFile: path, Format: "json"})
	require.NoError(t, err)
	lg.Debug("bitfinex request")
	require.NoError(t, lg.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"bitfinex request"`)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestParseVerbosity(t *testing.T) {
	for level, want := range map[int]Verbosity{
		0: VerbosityNone,
		1: VerbosityConsole,
		2: VerbosityConsoleAndFile,
		3: VerbosityFile,
	} {
		got, err := ParseVerbosity(level)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, bad := range []int{-1, 4, 99} {
		_, err := ParseVerbosity(bad)
		assert.Error(t, err, "level %d", bad)
	}
}

func TestVerbositySinks(t *testing.T) {
	assert.Nil(t, VerbosityNone.Outputs())
	assert.True(t, VerbosityConsole.Console())
	assert.False(t, VerbosityConsole.File())
	assert.True(t, VerbosityConsoleAndFile.Console())
	assert.True(t, VerbosityConsoleAndFile.File())
	assert.False(t, VerbosityFile.Console())
	assert.True(t, VerbosityFile.File())
}

func fixedNow() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }

func TestWalletDump(t *testing.T) {
	raw := []byte(`[["exchange","BTC",1.5]]`)

	cases := []struct {
		name        string
		verbosity   Verbosity
		wantConsole bool
		wantFile    bool
		wantNotice  bool
	}{
		{"none", VerbosityNone, false, false, false},
		{"console", VerbosityConsole, true, false, false},
		{"console and file", VerbosityConsoleAndFile, true, true, true},
		{"file", VerbosityFile, false, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			path := filepath.Join(t.TempDir(), "debug_log.txt")
			dump := WalletDump{Verbosity: tc.verbosity, Console: &out, FilePath: path, Now: fixedNow}
			require.NoError(t, dump.Write(raw))

			assert.Equal(t, tc.wantConsole, strings.Contains(out.String(), "Wallet Data: [\n  [\n    \"exchange\""))
			assert.Equal(t, tc.wantNotice, strings.Contains(out.String(), "Debug output has been saved to "+path))

			content, err := os.ReadFile(path)
			if !tc.wantFile {
				assert.True(t, os.IsNotExist(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(content), "Debug Log - 2024-03-09 14:05:07\n[\n  [\n"))
		})
	}
}

func TestWalletDumpOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug_log.txt")
	dump := WalletDump{Verbosity: VerbosityFile, FilePath: path, Now: fixedNow}
	require.NoError(t, dump.Write([]byte(`[["exchange","BTC",1]]`)))
	require.NoError(t, dump.Write([]byte(`[]`)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Debug Log - 2024-03-09 14:05:07\n[]", string(content))
}

func TestWalletDumpUnwritableFile(t *testing.T) {
	dump := WalletDump{Verbosity: VerbosityFile, FilePath: filepath.Join(t.TempDir(), "missing", "x.txt")}
	assert.Error(t, dump.Write([]byte(`[]`)))
}
