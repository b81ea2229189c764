package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Intent selects the trigger phrase vocabulary of the router.
type Intent struct {
	vocabularyFile string
}

func (x *Intent) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "intent-vocabulary",
			Usage:       "Trigger phrase file (.toml, .yaml or .yml); built-in phrases if empty",
			Category:    "Router",
			Sources:     cli.EnvVars("STUDYMATE_INTENT_VOCABULARY"),
			Destination: &x.vocabularyFile,
		},
	}
}

func (x Intent) LogValue() slog.Value {
	return slog.GroupValue(slog.String("vocabulary_file", x.vocabularyFile))
}

func (x *Intent) Configure() (usecase.IntentVocabulary, error) {
	if x.vocabularyFile == "" {
		return usecase.DefaultIntentVocabulary(), nil
	}

	v, err := usecase.LoadIntentVocabulary(x.vocabularyFile)
	if err != nil {
		return usecase.IntentVocabulary{}, goerr.Wrap(err, "failed to load intent vocabulary")
	}
	return v, nil
}
