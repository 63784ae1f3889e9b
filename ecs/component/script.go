package component

// ActionScript binds an entity to a tengo script that reacts to its action events.
type ActionScript struct {
	Path string
}

var ActionScriptComponent = NewComponent[ActionScript]()
