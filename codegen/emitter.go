package codegen

import (
	"fmt"

	"github.com/dekarrin/minipg/semantic"
)

// Emitter turns an analyzed grammar into source text for one target
// language. Implementations live outside this package; Emitter only states
// the contract, the same way this module's own Lexer/Parser/SemanticAnalyzer
// interfaces are implemented by concrete types in sibling packages.
type Emitter interface {
	// TargetLanguage names the language this Emitter produces, compared
	// case-sensitively against Config.TargetLanguage by Generate.
	TargetLanguage() string

	// Generate renders result into source text for cfg.TargetLanguage. An
	// emitter should refuse a result with result.HasErrors() true, since
	// spec-level errors mean the grammar never reached a codegen-ready
	// state.
	Generate(result *semantic.AnalysisResult, cfg *Config) (string, error)
}

// Registry dispatches Generate calls to whichever registered Emitter
// matches cfg.TargetLanguage.
type Registry struct {
	emitters map[string]Emitter
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{emitters: make(map[string]Emitter)}
}

// Register adds e under e.TargetLanguage(), replacing any emitter
// previously registered for that language.
func (r *Registry) Register(e Emitter) {
	r.emitters[e.TargetLanguage()] = e
}

// Generate looks up the Emitter for cfg.TargetLanguage and invokes it.
func (r *Registry) Generate(result *semantic.AnalysisResult, cfg *Config) (string, error) {
	if result.HasErrors() {
		return "", fmt.Errorf("codegen: grammar %q has unresolved errors, cannot generate", result.Grammar.Name)
	}
	e, ok := r.emitters[cfg.TargetLanguage]
	if !ok {
		return "", fmt.Errorf("codegen: no emitter registered for target language %q", cfg.TargetLanguage)
	}
	return e.Generate(result, cfg)
}
