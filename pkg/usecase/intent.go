package usecase

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// IntentVocabulary holds the trigger phrases of each intent. Matching is a
// case-insensitive substring test, so "previously" matches "previous".
type IntentVocabulary struct {
	Memory []string `toml:"memory" yaml:"memory"`
	Plan   []string `toml:"plan" yaml:"plan"`
}

func DefaultIntentVocabulary() IntentVocabulary {
	return IntentVocabulary{
		Memory: []string{"what did i study", "remind me", "last plan", "memory", "previous"},
		Plan:   []string{"study", "prepare", "revise", "syllabus", "subject", "exam"},
	}
}

// LoadIntentVocabulary reads a vocabulary file in TOML (.toml) or YAML
// (.yaml, .yml). An intent left empty in the file keeps its default phrases.
func LoadIntentVocabulary(path string) (IntentVocabulary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return IntentVocabulary{}, goerr.Wrap(err, "failed to read intent vocabulary", goerr.V("path", path))
	}

	var v IntentVocabulary
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(raw, &v); err != nil {
			return IntentVocabulary{}, goerr.Wrap(err, "failed to parse TOML intent vocabulary", goerr.V("path", path))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return IntentVocabulary{}, goerr.Wrap(err, "failed to parse YAML intent vocabulary", goerr.V("path", path))
		}
	default:
		return IntentVocabulary{}, goerr.New("unsupported intent vocabulary format", goerr.V("path", path), goerr.V("ext", ext))
	}

	def := DefaultIntentVocabulary()
	if len(v.Memory) == 0 {
		v.Memory = def.Memory
	}
	if len(v.Plan) == 0 {
		v.Plan = def.Plan
	}
	v.Memory = normalizePhrases(v.Memory)
	v.Plan = normalizePhrases(v.Plan)
	return v, nil
}

func normalizePhrases(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// containsAny reports whether text contains one of the phrases, ignoring case.
func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
