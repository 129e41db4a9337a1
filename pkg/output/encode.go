package output

import (
	"encoding/json"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/haus/pkg/errors"
)

// Encode writes v to w in a structured format. Text is not a structured
// format; callers render it themselves.
func Encode(w io.Writer, format Format, v interface{}) error {
	var err error
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		err = encoder.Encode(v)
		if err == nil {
			err = encoder.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(v)
	default:
		return errors.Newf(errors.ErrInvalidInput, "%s is not a structured format", format)
	}

	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode %s output", format)
	}
	return nil
}
