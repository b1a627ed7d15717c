package kind

// Kind is the category of a documentation entity in a search result.
type Kind string

// Entity kinds.
const (
	Type           Kind = "type"
	InstanceMethod Kind = "instance_method"
	ClassMethod    Kind = "class_method"
	Macro          Kind = "macro"
	Constructor    Kind = "constructor"
	Constant       Kind = "constant"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case Type, InstanceMethod, ClassMethod, Macro, Constructor, Constant:
		return true
	}
	return false
}

// IsMethod reports whether k is method-like (instance/class method, macro, constructor).
func (k Kind) IsMethod() bool {
	return k == InstanceMethod || k.IsTypeLevel()
}

// IsTypeLevel reports whether k is invoked on the type rather than an instance.
func (k Kind) IsTypeLevel() bool {
	return k == ClassMethod || k == Macro || k == Constructor
}

// Prefix returns the display prefix: "#" for instance methods,
// "." for type-level methods, empty otherwise.
func (k Kind) Prefix() string {
	switch {
	case k == InstanceMethod:
		return "#"
	case k.IsTypeLevel():
		return "."
	default:
		return ""
	}
}
