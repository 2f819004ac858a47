package config

const SourceFileExt = ".py"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".py", ".ssa"}

// Config file names searched for, in order, from the working directory upward.
var ConfigFileNames = []string{"funssa.yaml", "funssa.yml"}

// DefaultReturnPrefix seeds the names given to return values.
const DefaultReturnPrefix = "__return_value"

// UnrollMacroName marks a for-loop for unrolling: for i in unroll(4): ...
const UnrollMacroName = "unroll"

// Cache defaults
const (
	DefaultCacheDir        = ".funssa"
	DefaultCacheFile       = "cache.db"
	DefaultCacheMaxEntries = 512
)

// Built-in function names
const (
	LenFuncName = "len"
	AbsFuncName = "abs"
	MinFuncName = "min"
	MaxFuncName = "max"
)

// IsSourceFile checks if a file has a recognized source extension
func IsSourceFile(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Version is reported by funssa --version.
const Version = "0.3.0"
