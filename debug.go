package fzmatch

import (
	"fmt"
	"os"
	"path/filepath"
)

var fzDebugEnv = os.Getenv("FZMATCH_DEBUG") == "1"
var fzDebugFile = os.Getenv("FZMATCH_DEBUG_FILE")

func debugf(format string, args ...any) {
	if !fzDebugEnv {
		return
	}
	if fzDebugFile == "" {
		fmt.Fprintf(os.Stderr, "[fzmatch-debug] "+format+"\n", args...)
		return
	}
	abspath := fzDebugFile
	if !filepath.IsAbs(abspath) {
		cwd, err := os.Getwd()
		if err == nil {
			abspath = filepath.Join(cwd, fzDebugFile)
		}
	}
	f, err := os.OpenFile(abspath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[fzmatch-debug] open file error: %v\n", err)
		fmt.Fprintf(os.Stderr, "[fzmatch-debug] "+format+"\n", args...)
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "[fzmatch-debug] close file error: %v\n", cerr)
		}
	}()
	if _, err := fmt.Fprintf(f, "[fzmatch-debug] "+format+"\n", args...); err != nil {
		fmt.Fprintf(os.Stderr, "[fzmatch-debug] write file error: %v\n", err)
	}
}
