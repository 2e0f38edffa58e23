// 24 Mar 2023
// Flag defaults from the environment. People running the tool over
// many sample batches keep a .env next to their data instead of
// retyping the same flags.

package qsa

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvDefaults loads .env if there is one, then folds QSA_* variables
// into the flag defaults. Explicit flags still win, since this runs
// before flag parsing. Unparsable values are ignored rather than
// fatal; a broken .env should not stop an analysis the flags fully
// describe.
func EnvDefaults(flags *CmdFlag) {
	godotenv.Load() // no .env is fine

	if v := os.Getenv("QSA_OUT_DIR"); v != "" {
		flags.OutDir = v
	}
	if v := os.Getenv("QSA_FONT"); v != "" {
		flags.FontPath = v
	}
	if v := os.Getenv("QSA_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			flags.Threshold = t
		}
	}
	if v := os.Getenv("QSA_LOG_BASE"); v != "" {
		if b, err := strconv.ParseFloat(v, 64); err == nil {
			flags.LogBase = b
		}
	}
	if v := os.Getenv("QSA_PLOTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			flags.Plot = b
		}
	}
}
