package main

import "github.com/milk9111/actionanim/prefabs"

// Action is the demo's action alphabet.
type Action int

const (
	ActionIdle Action = iota
	ActionRun
	ActionSwing
	ActionSwingFinished
)

var actionNames = map[string]Action{
	"idle":           ActionIdle,
	"run":            ActionRun,
	"swing":          ActionSwing,
	"swing_finished": ActionSwingFinished,
}

var actionCodec = prefabs.NewEnumCodec(actionNames)

func (a Action) String() string {
	return actionCodec.FormatAction(a)
}
