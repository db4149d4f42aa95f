package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// 输出目标，与 Config.Outputs 使用同一套名称。
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

const DefaultDebugFile = "debug_log.txt"

// Verbosity 控制原始钱包响应的转储位置（--debug-level）。
type Verbosity int

const (
	VerbosityNone           Verbosity = iota // 0: 不输出
	VerbosityConsole                         // 1: 仅控制台
	VerbosityConsoleAndFile                  // 2: 控制台 + 文件
	VerbosityFile                            // 3: 仅文件
)

// ParseVerbosity maps a --debug-level value to a Verbosity.
func ParseVerbosity(level int) (Verbosity, error) {
	v := Verbosity(level)
	if v < VerbosityNone || v > VerbosityFile {
		return VerbosityNone, fmt.Errorf("debug level must be one of 0, 1, 2, 3 (got %d)", level)
	}
	return v, nil
}

// Outputs returns the sinks selected by v.
func (v Verbosity) Outputs() []string {
	switch v {
	case VerbosityConsole:
		return []string{OutputStdout}
	case VerbosityConsoleAndFile:
		return []string{OutputStdout, OutputFile}
	case VerbosityFile:
		return []string{OutputFile}
	}
	return nil
}

func (v Verbosity) Console() bool { return contains(v.Outputs(), OutputStdout) }

func (v Verbosity) File() bool { return contains(v.Outputs(), OutputFile) }

// WalletDump 将原始钱包 JSON 写到 Verbosity 选定的位置。
type WalletDump struct {
	Verbosity Verbosity
	Console   io.Writer
	FilePath  string
	Now       func() time.Time
}

// Write pretty-prints raw and sends it to the configured sinks. The file is
// overwritten on every call.
func (d WalletDump) Write(raw []byte) error {
	if d.Verbosity == VerbosityNone {
		return nil
	}
	pretty := indent(raw)

	console := d.Console
	if console == nil {
		console = os.Stdout
	}
	if d.Verbosity.Console() {
		fmt.Fprintf(console, "Wallet Data: %s\n", pretty)
	}
	if d.Verbosity.File() {
		path := d.FilePath
		if path == "" {
			path = DefaultDebugFile
		}
		now := time.Now
		if d.Now != nil {
			now = d.Now
		}
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "Debug Log - %s\n", now().Format("2006-01-02 15:04:05"))
		buf.Write(pretty)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return errors.Wrap(err, "write debug log")
		}
		if d.Verbosity == VerbosityConsoleAndFile {
			fmt.Fprintf(console, "Debug output has been saved to %s\n", path)
		}
	}
	return nil
}

func indent(raw []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return raw
	}
	return buf.Bytes()
}
