package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is an entity prefab: a name and raw component blocks keyed by
// component name. Blocks are decoded lazily with DecodeComponentSpec.
type EntityBuildSpec struct {
	Name       string         `yaml:"name" json:"name"`
	Components map[string]any `yaml:"components" json:"components"`
}

const (
	TransformComponentName = "transform"
	SpriteComponentName    = "sprite"
	AnimationComponentName = "animation"
	ScriptComponentName    = "script"
)

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Component decodes the named block of spec. ok is false when the block is absent.
func Component[T any](spec EntityBuildSpec, name string) (T, bool, error) {
	raw, ok := spec.Components[name]
	if !ok {
		var zero T
		return zero, false, nil
	}
	out, err := DecodeComponentSpec[T](raw)
	if err != nil {
		return out, true, fmt.Errorf("prefabs: %s component %s: %w", spec.Name, name, err)
	}
	return out, true, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	ScaleX float64 `yaml:"scale_x" json:"scale_x"`
	ScaleY float64 `yaml:"scale_y" json:"scale_y"`
}

type SpriteComponentSpec struct {
	OriginX            float64 `yaml:"origin_x" json:"origin_x"`
	OriginY            float64 `yaml:"origin_y" json:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero" json:"center_origin_if_zero"`
}

// AnimationComponentSpec binds an entity to asset handles and names the action
// sent when it spawns.
type AnimationComponentSpec struct {
	Catalog string `yaml:"catalog" json:"catalog"`
	Clips   string `yaml:"clips" json:"clips"`
	Initial string `yaml:"initial" json:"initial"`
}

type ScriptComponentSpec struct {
	Path string `yaml:"path" json:"path"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index" json:"index"`
}
