package logic

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/kdsm/internal/config"
)

// show prints the resolved configuration as YAML with the inline key masked.
func show(cfg *config.Config, out io.Writer) error {
	masked := *cfg

	if masked.Key.String != "" {
		masked.Key.String = "********"
	}

	data, err := yaml.Marshal(masked)
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}

	return nil
}
