package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/actionanim/prefabs"
)

var ErrInvalidQueueConfig = errors.New("animation: invalid queue config")

// ParseOverflowPolicy reads the names produced by OverflowPolicy.String.
// Empty means drop_newest.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop_newest":
		return OverflowDropNewest, nil
	case "drop_oldest":
		return OverflowDropOldest, nil
	case "reject":
		return OverflowReject, nil
	default:
		return OverflowDropNewest, fmt.Errorf("%w: overflow %q", ErrInvalidQueueConfig, s)
	}
}

// QueueLimitsFromConfig converts the queue block of animation.yaml.
func QueueLimitsFromConfig(cfg prefabs.QueueConfigSpec) (QueueLimits, error) {
	if cfg.MaxDepth < 0 {
		return QueueLimits{}, fmt.Errorf("%w: max_depth %d", ErrInvalidQueueConfig, cfg.MaxDepth)
	}
	policy, err := ParseOverflowPolicy(cfg.Overflow)
	if err != nil {
		return QueueLimits{}, err
	}
	return QueueLimits{MaxDepth: cfg.MaxDepth, Overflow: policy}, nil
}

// OptionsFromConfig turns animation.yaml into plugin options.
func OptionsFromConfig(cfg prefabs.AnimationConfigSpec) ([]AnimationPluginOption, error) {
	limits, err := QueueLimitsFromConfig(cfg.Queue)
	if err != nil {
		return nil, err
	}
	return []AnimationPluginOption{
		WithQueueLimits(limits),
		WithRandom(NewRandomSource(cfg.Seed)),
	}, nil
}
