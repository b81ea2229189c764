package usecase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/usecase"
)

func TestContainsAny(t *testing.T) {
	vocab := usecase.DefaultIntentVocabulary()

	gt.Bool(t, usecase.ContainsAny("What did I STUDY yesterday", vocab.Memory)).True()
	gt.Bool(t, usecase.ContainsAny("show previously saved", vocab.Memory)).True()
	gt.Bool(t, usecase.ContainsAny("Studying for finals", vocab.Plan)).True()
	gt.Bool(t, usecase.ContainsAny("hello there", vocab.Plan)).False()
	gt.Bool(t, usecase.ContainsAny("anything", nil)).False()
	gt.Bool(t, usecase.ContainsAny("anything", []string{""})).False()
}

func TestLoadIntentVocabulary(t *testing.T) {
	dir := t.TempDir()

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "intents.toml")
		gt.NoError(t, os.WriteFile(path, []byte("memory = [\"History\", \" recap \"]\nplan = [\"Timetable\"]\n"), 0o600)).Required()

		v, err := usecase.LoadIntentVocabulary(path)
		gt.NoError(t, err).Required()
		gt.Value(t, v.Memory).Equal([]string{"history", "recap"})
		gt.Value(t, v.Plan).Equal([]string{"timetable"})
	})

	t.Run("yaml keeps defaults for omitted intents", func(t *testing.T) {
		path := filepath.Join(dir, "intents.yaml")
		gt.NoError(t, os.WriteFile(path, []byte("plan:\n  - cram\n"), 0o600)).Required()

		v, err := usecase.LoadIntentVocabulary(path)
		gt.NoError(t, err).Required()
		gt.Value(t, v.Memory).Equal(usecase.DefaultIntentVocabulary().Memory)
		gt.Value(t, v.Plan).Equal([]string{"cram"})
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "intents.json")
		gt.NoError(t, os.WriteFile(path, []byte("{}"), 0o600)).Required()

		_, err := usecase.LoadIntentVocabulary(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("broken toml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		gt.NoError(t, os.WriteFile(path, []byte("memory = [\"unterminated"), 0o600)).Required()

		_, err := usecase.LoadIntentVocabulary(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := usecase.LoadIntentVocabulary(filepath.Join(dir, "nope.yml"))
		gt.Value(t, err).NotNil()
	})
}
