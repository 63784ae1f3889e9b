package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// ClipSheetSpec is a *.clips.yaml file: sheet geometry and named frame ranges.
type ClipSheetSpec struct {
	FrameWidth  int                      `yaml:"frame_width" json:"frame_width"`
	FrameHeight int                      `yaml:"frame_height" json:"frame_height"`
	Columns     int                      `yaml:"columns" json:"columns"`
	Clips       map[string]ClipRangeSpec `yaml:"clips" json:"clips"`
}

type ClipRangeSpec struct {
	First uint `yaml:"first" json:"first"`
	Last  uint `yaml:"last" json:"last"`
}

// AnimationCatalogSpec is a *.anim.yaml file keyed by action name.
type AnimationCatalogSpec struct {
	Actions map[string]AnimationSetSpec `yaml:"actions" json:"actions"`
}

type AnimationSetSpec struct {
	Ordering string     `yaml:"ordering,omitempty" json:"ordering,omitempty" jsonschema:"enum=sequential,enum=shuffled,enum=random_pick,enum=random,enum=random_select"`
	Steps    []StepSpec `yaml:"steps" json:"steps"`
}

type StepSpec struct {
	Clip       string          `yaml:"clip" json:"clip"`
	Period     float64         `yaml:"period" json:"period" jsonschema:"description=seconds per frame"`
	Mode       string          `yaml:"mode,omitempty" json:"mode,omitempty" jsonschema:"enum=once,enum=repeating"`
	Attributes []AttributeSpec `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// AttributeSpec is either a bare flag (flip_x, flip_y) or a {trigger: action} map.
type AttributeSpec struct {
	Kind    string
	Trigger string
}

const (
	attributeFlipX   = "flip_x"
	attributeFlipY   = "flip_y"
	attributeTrigger = "trigger"
)

func (a *AttributeSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		name := strings.ToLower(strings.TrimSpace(value.Value))
		if name != attributeFlipX && name != attributeFlipY {
			return fmt.Errorf("%w: %q (line %d)", ErrUnknownAttribute, value.Value, value.Line)
		}
		a.Kind = name
		a.Trigger = ""
		return nil
	case yaml.MappingNode:
		var raw map[string]string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		action, ok := raw[attributeTrigger]
		if !ok || len(raw) != 1 {
			return fmt.Errorf("%w: mapping must be {trigger: action} (line %d)", ErrUnknownAttribute, value.Line)
		}
		a.Kind = attributeTrigger
		a.Trigger = action
		return nil
	default:
		return fmt.Errorf("%w: line %d", ErrUnknownAttribute, value.Line)
	}
}

func (a AttributeSpec) MarshalYAML() (any, error) {
	if a.Kind == attributeTrigger {
		return map[string]string{attributeTrigger: a.Trigger}, nil
	}
	return a.Kind, nil
}

func (AttributeSpec) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Enum: []interface{}{attributeFlipX, attributeFlipY}},
			{
				Type:                 "object",
				Required:             []string{attributeTrigger},
				PatternProperties:    map[string]*jsonschema.Schema{"^trigger$": {Type: "string"}},
				AdditionalProperties: jsonschema.FalseSchema,
			},
		},
	}
}

// AnimationConfigSpec is animation.yaml.
type AnimationConfigSpec struct {
	Queue QueueConfigSpec `yaml:"queue" json:"queue"`
	Seed  int64           `yaml:"seed" json:"seed" jsonschema:"description=0 seeds from the clock"`
}

type QueueConfigSpec struct {
	MaxDepth int    `yaml:"max_depth" json:"max_depth" jsonschema:"description=0 means unbounded"`
	Overflow string `yaml:"overflow,omitempty" json:"overflow,omitempty" jsonschema:"enum=drop_newest,enum=drop_oldest,enum=reject"`
}

// LoadSpec reads filename through the default loader and decodes it as T.
func LoadSpec[T any](filename string) (T, error) {
	return LoadSpecFrom[T](DefaultLoader, filename)
}

func LoadSpecFrom[T any](l *Loader, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := DecodeSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// DecodeSpec decodes YAML, rejecting unknown fields.
func DecodeSpec[T any](data []byte) (T, error) {
	var spec T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		var zero T
		return zero, err
	}
	return spec, nil
}

func LoadClipSheetSpec(name string) (ClipSheetSpec, error) {
	return LoadSpec[ClipSheetSpec](ClipsFile(name))
}

func LoadAnimationCatalogSpec(name string) (AnimationCatalogSpec, error) {
	return LoadSpec[AnimationCatalogSpec](AnimFile(name))
}

func LoadAnimationConfigSpec() (AnimationConfigSpec, error) {
	return LoadSpec[AnimationConfigSpec](ConfigFile)
}
