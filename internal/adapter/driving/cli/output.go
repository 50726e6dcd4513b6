package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/keyprovisioner/internal/config"
	"github.com/ericfisherdev/keyprovisioner/internal/domain/model"
)

// WriteStatus renders status to w in the given format. The text format is the
// bare message, one line.
func WriteStatus(w io.Writer, format string, status model.Status) error {
	switch format {
	case config.OutputText, "":
		_, err := fmt.Fprintln(w, status.Message)
		return err
	default:
		return writeObject(w, format, status)
	}
}

func writeObject(w io.Writer, format string, obj any) error {
	switch format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.OutputYAML:
		data, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
