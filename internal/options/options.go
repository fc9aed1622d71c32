// Package options defines the caller-supplied Options value (spec.md §6)
// that is the only ambient configuration a parse depends on (spec.md §5:
// "the only ambient configuration is the caller-supplied Options value
// passed by value into the entry point").
package options

// PPLineMode selects how preprocessor lines are surfaced.
type PPLineMode string

const (
	PPIgnore PPLineMode = "ignore"
	PPRetain PPLineMode = "retain"
)

// MethodBodyMode selects how function bodies are handled.
type MethodBodyMode string

const (
	MethodBodySkip         MethodBodyMode = "skip"
	MethodBodyRetainTokens MethodBodyMode = "retain_tokens"
)

// ExternTemplateMode selects how `extern template ...;` instantiation
// declarations are handled.
type ExternTemplateMode string

const (
	ExternTemplateRecord ExternTemplateMode = "record"
	ExternTemplateSkip   ExternTemplateMode = "skip"
)

// Options is passed by value into the Parse entry point (spec.md §6).
type Options struct {
	PreprocessorLines     PPLineMode
	RetainDoxygenComments bool
	MethodBody            MethodBodyMode
	ExternTemplateHandling ExternTemplateMode
	KnownTypeNames        []string
	Strict                bool
	GNUAttributes         bool
	MSVCAttributes        bool
	Concepts              bool
}

// Default returns the Options defaults spelled out in spec.md §6.
func Default() Options {
	return Options{
		PreprocessorLines:      PPRetain,
		RetainDoxygenComments:  true,
		MethodBody:             MethodBodySkip,
		ExternTemplateHandling: ExternTemplateRecord,
		Strict:                 false,
		GNUAttributes:          true,
		MSVCAttributes:         false,
		Concepts:               true,
	}
}
