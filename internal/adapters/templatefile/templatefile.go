// Package templatefile loads venue mixer templates from YAML or JSON files.
package templatefile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/mixer"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// ErrLoadTemplate wraps read and decode failures.
var ErrLoadTemplate = errors.New("load mixer template")

// Load reads the template at path and checks that it resolves. JSON files
// are accepted as YAML. Configuration errors from the resolver are returned
// unwrapped so callers can match them with errors.As.
func Load(path string) (model.MixerConfig, error) {
	var cfg model.MixerConfig
	if strings.TrimSpace(path) == "" {
		return cfg, fmt.Errorf("%w: empty path", ErrLoadTemplate)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrLoadTemplate, path, err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrLoadTemplate, path, err)
	}
	if len(cfg.Groups) == 0 {
		return cfg, fmt.Errorf("%w: %s: no groups", ErrLoadTemplate, path)
	}
	if _, err := mixer.Resolve(cfg); err != nil {
		return model.MixerConfig{}, err
	}
	return cfg, nil
}
