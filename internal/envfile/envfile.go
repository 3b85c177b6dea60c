// Package envfile reads key/value files (.env, .json, .yaml) used to push
// secret material into Key Vault. Values are validated for control characters
// and total size before leaving the process.
package envfile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

var envKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// maxTotalBytes caps accumulated key+value bytes, mirroring the Kubernetes
// Secret size limit.
const maxTotalBytes = 1_000_000

// Parse detects the format from the file name extension and returns the
// key/value map. Unknown extensions are treated as dotenv.
func Parse(content []byte, name string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return parseYAML(content)
	case ".json":
		return parseJSON(content)
	default:
		return parseDotEnv(content)
	}
}

func parseDotEnv(content []byte) (map[string]string, error) {
	m := map[string]string{}
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		i := strings.IndexByte(line, '=')
		if i < 0 {
			return nil, fmt.Errorf(".env line %d missing '='", lineNo)
		}
		key := strings.TrimSpace(line[:i])
		if !envKeyRe.MatchString(key) {
			return nil, fmt.Errorf("invalid env key %q at line %d", key, lineNo)
		}
		rawVal := line[i+1:]
		if !(strings.HasPrefix(rawVal, "\"") || strings.HasPrefix(rawVal, "'")) {
			m[key] = strings.TrimPrefix(rawVal, " ")
			continue
		}
		v, err := unquote(rawVal, lineNo)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func unquote(rawVal string, lineNo int) (string, error) {
	if strings.HasPrefix(rawVal, "'") {
		if !strings.HasSuffix(rawVal, "'") || len(rawVal) < 2 {
			return "", fmt.Errorf("unterminated single quote line %d", lineNo)
		}
		return rawVal[1 : len(rawVal)-1], nil
	}
	if !strings.HasSuffix(rawVal, "\"") || len(rawVal) < 2 {
		return "", fmt.Errorf("unterminated double quote line %d", lineNo)
	}
	body := rawVal[1 : len(rawVal)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("dangling escape line %d", lineNo)
		}
		esc := body[i+1]
		i++
		switch esc {
		case '\\', '"':
			b.WriteByte(esc)
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			return "", fmt.Errorf("unsupported escape \\%c line %d", esc, lineNo)
		}
	}
	return b.String(), nil
}

func parseYAML(content []byte) (map[string]string, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(content, &obj); err != nil {
		return nil, err
	}
	return normalize(obj, "yaml")
}

func parseJSON(content []byte) (map[string]string, error) {
	var obj map[string]any
	if err := json.Unmarshal(content, &obj); err != nil {
		return nil, err
	}
	return normalize(obj, "json")
}

// normalize validates object values and coerces scalars to string.
func normalize(obj map[string]any, kind string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range obj {
		switch vv := v.(type) {
		case nil:
			return nil, fmt.Errorf("key %s has null value (%s not allowed)", k, kind)
		case string:
			out[k] = vv
		case bool:
			if vv {
				out[k] = "true"
			} else {
				out[k] = "false"
			}
		case int, int64, int32, float64, float32:
			out[k] = fmt.Sprint(vv)
		default:
			return nil, fmt.Errorf("key %s has unsupported value type %T", k, v)
		}
	}
	return out, nil
}

// Validate checks keys, value characters, and accumulated size.
func Validate(m map[string]string) error {
	var total int
	for k, v := range m {
		if !envKeyRe.MatchString(k) {
			return fmt.Errorf("invalid env key %s", k)
		}
		if err := rejectControl(v); err != nil {
			return fmt.Errorf("value for %s: %w", k, err)
		}
		total += len(k) + len(v)
		if total > maxTotalBytes {
			return fmt.Errorf("secret data exceeds %d bytes", maxTotalBytes)
		}
	}
	return nil
}

func rejectControl(s string) error {
	for _, r := range s {
		if r == 0 {
			return errors.New("contains NUL byte")
		}
		if (r >= 0x01 && r <= 0x08) || r == 0x0B || r == 0x0C || (r >= 0x0E && r <= 0x1F) || r == 0x7F {
			return fmt.Errorf("contains control char 0x%02X", r)
		}
	}
	return nil
}
