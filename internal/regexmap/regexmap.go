// Package regexmap loads the user-supplied regex mapping file that backs
// parser.ParseRegex: an ordered list of named-capture-group regexes, each
// optionally describing how to parse a "datetime" capture.
package regexmap

import (
	"fmt"
	"os"
	"regexp"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/control-theory/wd/internal/parser"
)

// rawMapping mirrors the YAML shape of one entry under `mappings:`; Pattern
// is compiled into a *regexp.Regexp on load, same split the original's
// RegexMapping made between on-disk representation and the compiled form
// `parser/regex.rs`'s Mapping actually matches against.
type rawMapping struct {
	Pattern         string `yaml:"pattern"`
	Datetime        string `yaml:"datetime"`
	DatetimePrepend string `yaml:"datetime_prepend"`
}

type file struct {
	Mappings []rawMapping `yaml:"mappings"`
}

// Load reads a --regexes YAML file (with ~ expansion) and compiles it into
// the parser.Mapping list ParseRegex expects, in file order so the first
// matching pattern wins exactly as it appears on disk.
func Load(path string) ([]parser.Mapping, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mappings := make([]parser.Mapping, 0, len(f.Mappings))
	for i, m := range f.Mappings {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: mapping %d: invalid pattern: %w", path, i, err)
		}
		mappings = append(mappings, parser.Mapping{
			Pattern:         re,
			Datetime:        m.Datetime,
			DatetimePrepend: m.DatetimePrepend,
		})
	}

	return mappings, nil
}
