package config

// SourceFileExt is the canonical source file extension.
const SourceFileExt = ".tip"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".tip"}

// ConfigFileName is looked up next to the compiled file and in the
// working directory when no -config flag is given.
const ConfigFileName = "tipc.yaml"

// MaxRecursionDepth bounds expression nesting in the parser.
const MaxRecursionDepth = 500
