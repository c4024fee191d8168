package docconfig

import (
	"bytes"
	"fmt"
)

// header is prepended to a generated configuration template.
const header = "# docengine configuration\n# See https://pkg.go.dev/github.com/yaklabco/docengine/pkg/docconfig for field documentation.\n"

// Template renders a commented starter configuration document in the
// given format ("yaml" or "toml").
func Template(format string) ([]byte, error) {
	cfg := NewConfig()

	var body []byte
	var err error
	switch format {
	case "yaml", "":
		body, err = cfg.ToYAML()
	case "toml":
		body, err = cfg.ToTOML()
	default:
		return nil, fmt.Errorf("unknown template format %q", format)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}
