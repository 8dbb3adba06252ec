// Package config loads the robot's INI configuration files into a table of
// typed (section, key) lookups.
//
// Section and key names are case-insensitive. Required values that are absent
// are reported as *MissingKeyError so that the robot refuses to start with an
// incomplete configuration.
package config

import (
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-ini/ini"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/TechnoJays/robot2017/utils"
)

// TagName is the struct tag Decode reads key names from. A tag option of
// omitempty marks the key as optional.
const TagName = "ini"

// Table is a read-only view of one or more merged INI sources.
type Table struct {
	file    *ini.File
	sources []string
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{Insensitive: true}
}

// Read loads the named files. Keys in later files override earlier ones.
func Read(paths ...string) (*Table, error) {
	if len(paths) == 0 {
		return nil, ErrNoSources
	}
	others := make([]interface{}, 0, len(paths)-1)
	for _, p := range paths[1:] {
		others = append(others, p)
	}
	f, err := ini.LoadSources(loadOptions(), paths[0], others...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config from %v", paths)
	}
	return &Table{file: f, sources: paths}, nil
}

// FromReader parses a single INI document.
func FromReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return FromBytes(data)
}

// FromBytes parses a single INI document.
func FromBytes(data []byte) (*Table, error) {
	f, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return &Table{file: f}, nil
}

// Sources returns the file paths the table was read from.
func (t *Table) Sources() []string {
	return t.sources
}

// Sections returns the names of all sections, lower-cased.
func (t *Table) Sections() []string {
	var names []string
	for _, name := range t.file.SectionStrings() {
		if strings.EqualFold(name, ini.DefaultSection) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// HasSection reports whether section exists.
func (t *Table) HasSection(section string) bool {
	_, err := t.file.GetSection(section)
	return err == nil
}

// Has reports whether section contains key.
func (t *Table) Has(section, key string) bool {
	sec, err := t.file.GetSection(section)
	return err == nil && sec.HasKey(key)
}

func (t *Table) section(section string) (*ini.Section, error) {
	sec, err := t.file.GetSection(section)
	if err != nil {
		return nil, NewMissingSectionError(section)
	}
	return sec, nil
}

// String returns the raw value of a required key.
func (t *Table) String(section, key string) (string, error) {
	sec, err := t.section(section)
	if err != nil {
		return "", err
	}
	k, err := sec.GetKey(key)
	if err != nil {
		return "", NewMissingKeyError(section, key)
	}
	return k.String(), nil
}

// Float returns a required key as a float64.
func (t *Table) Float(section, key string) (float64, error) {
	s, err := t.String(section, key)
	if err != nil {
		return 0, err
	}
	v, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil {
		return 0, NewInvalidValueError(section, key, err)
	}
	return v, nil
}

// Int returns a required key as an int.
func (t *Table) Int(section, key string) (int, error) {
	s, err := t.String(section, key)
	if err != nil {
		return 0, err
	}
	v, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil {
		return 0, NewInvalidValueError(section, key, err)
	}
	return v, nil
}

// Bool returns a required key as a bool. Besides the strconv spellings,
// yes/no and on/off are accepted.
func (t *Table) Bool(section, key string) (bool, error) {
	s, err := t.String(section, key)
	if err != nil {
		return false, err
	}
	v, err := parseBool(s)
	if err != nil {
		return false, NewInvalidValueError(section, key, err)
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return cast.ToBoolE(strings.TrimSpace(s))
}

func boolWordsHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	return parseBool(data.(string))
}

// Decode copies section into the struct pointed to by out, converting
// values to the field types. Every tagged field is required unless its tag
// carries omitempty.
func (t *Table) Decode(section string, out interface{}) error {
	if typ := reflect.TypeOf(out); typ == nil || typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return utils.NewUnexpectedTypeError(&struct{}{}, out)
	}
	sec, err := t.section(section)
	if err != nil {
		return err
	}
	raw := make(map[string]interface{}, len(sec.Keys()))
	for _, k := range sec.Keys() {
		raw[k.Name()] = strings.TrimSpace(k.String())
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       boolWordsHook,
		Metadata:         &md,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "failed to build config decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return errors.Wrapf(err, "failed to decode config section %q", section)
	}

	optional := optionalKeys(out)
	sort.Strings(md.Unset)
	for _, key := range md.Unset {
		if !optional[strings.ToLower(key)] {
			return NewMissingKeyError(section, key)
		}
	}
	return nil
}

func optionalKeys(out interface{}) map[string]bool {
	keys := map[string]bool{}
	typ := reflect.TypeOf(out)
	for typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return keys
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		parts := strings.Split(field.Tag.Get(TagName), ",")
		name := parts[0]
		if name == "" {
			name = field.Name
		}
		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				keys[strings.ToLower(name)] = true
			}
		}
	}
	return keys
}

// Require returns a *MissingKeyError for the first of keys absent from
// section. It is used for keys that become mandatory only when another key
// enables a feature.
func (t *Table) Require(section string, keys ...string) error {
	if _, err := t.section(section); err != nil {
		return err
	}
	for _, key := range keys {
		if !t.Has(section, key) {
			return NewMissingKeyError(section, key)
		}
	}
	return nil
}
