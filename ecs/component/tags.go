package component

// PlayerTag marks the entity driven by keyboard and UI input.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
