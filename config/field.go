package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration key with its default value.
// The type of Value is the type every value of the field must have.
type Field struct {
	Key         string
	Value       any
	Description string

	validate func(any) error
}

// Env is the environment variable overriding the field.
func (f Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the Go type of the field's values.
func (f Field) Type() string {
	return reflect.TypeOf(f.Value).String()
}

// Parse converts command line words into a value of the field's type and validates it.
func (f Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: value is required", f.Key)
	}

	var (
		v   any
		err error
	)

	switch f.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case []string:
		v = lo.Compact(lo.Map(raw, func(s string, _ int) string { return strings.TrimSpace(s) }))
	default:
		return nil, fmt.Errorf("%s: unsupported type %s", f.Key, f.Type())
	}

	if err != nil {
		return nil, fmt.Errorf("%s: expected %s: %w", f.Key, f.Type(), err)
	}

	if err := f.Validate(v); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate checks v against the field's constraint, if it has one.
func (f Field) Validate(v any) error {
	if f.validate == nil {
		return nil
	}

	if err := f.validate(v); err != nil {
		return fmt.Errorf("%s: %w", f.Key, err)
	}

	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Env         string `json:"env"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Env:         f.Env(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.Type(),
	})
}

// Pretty renders the field for the config info command.
func (f Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		return lo.Ternary(value, style.Success, style.Error)(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Warning(value)
	case []string:
		return "[" + strings.Join(lo.Map(value, func(s string, _ int) string { return style.Warning(s) }), ", ") + "]"
	default:
		return style.Info(fmt.Sprint(value))
	}
}

var prettyTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"accent": style.Accent,
	"label":  style.Header(style.InfoColor),
	"hl":     highlight,
	"current": func(k string) any {
		return viper.Get(k)
	},
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ accent .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Value:" }}   {{ hl (current .Key) }}
{{ label "Default:" }} {{ hl .Value }}
{{ label "Type:" }}    {{ .Type }}`))
