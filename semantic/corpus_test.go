package semantic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minipg/parse"
)

// corpusManifest mirrors testdata/grammars/manifest.toml. Adding a sample
// grammar to the corpus is then a matter of dropping in a .g4 file and a
// [[grammar]] entry, not writing a new test function.
type corpusManifest struct {
	Grammar []corpusEntry `toml:"grammar"`
}

type corpusEntry struct {
	Name        string `toml:"name"`
	File        string `toml:"file"`
	RuleCount   int    `toml:"ruleCount"`
	TokenCount  int    `toml:"tokenCount"`
	ExpectClean bool   `toml:"expectClean"`
}

func loadCorpusManifest(t *testing.T) corpusManifest {
	t.Helper()
	var m corpusManifest
	_, err := toml.DecodeFile(filepath.Join("..", "testdata", "grammars", "manifest.toml"), &m)
	require.NoError(t, err)
	require.NotEmpty(t, m.Grammar)
	return m
}

func Test_Corpus_SampleGrammars(t *testing.T) {
	manifest := loadCorpusManifest(t)

	for _, entry := range manifest.Grammar {
		entry := entry
		t.Run(entry.Name, func(t *testing.T) {
			path := filepath.Join("..", "testdata", "grammars", entry.File)
			src, err := os.ReadFile(path)
			require.NoError(t, err)

			g, parseDiags, err := parse.ParseString(string(src), entry.File)
			require.NoError(t, err)
			require.Empty(t, parseDiags, "grammar fixture %s should parse without diagnostics", entry.File)

			result, err := NewAnalyzer().Analyze(g)
			require.NoError(t, err)

			assert.False(t, result.HasErrors(), "fixture %s should analyze without errors", entry.File)
			assert.Equal(t, entry.RuleCount, result.Symbols.RuleCount(), "rule count for %s", entry.File)
			assert.Equal(t, entry.TokenCount, result.Symbols.TokenCount(), "token count for %s", entry.File)

			if entry.ExpectClean {
				assert.Empty(t, result.Diagnostics, "fixture %s is expected to analyze with zero diagnostics", entry.File)
			}
		})
	}
}
