package source

// Category classifies a script-exposed identifier.
type Category int

const (
	// CategoryOther covers props and anything not read from data or methods.
	CategoryOther Category = iota
	// CategoryData is reactive state returned by data().
	CategoryData
	// CategoryOptions is callable or derived behavior: methods, computed, inject.
	CategoryOptions
)

func (c Category) String() string {
	switch c {
	case CategoryData:
		return "data"
	case CategoryOptions:
		return "options"
	default:
		return "other"
	}
}

// Binding is one identifier exposed by the component script.
type Binding struct {
	Name     string
	Category Category
}

// BindingMap is the categorized script metadata of a component.
type BindingMap struct {
	Component string // file base name without extension
	Script    string // raw script source, passed through unchanged
	Lang      string // "js" or "ts"
	Bindings  []Binding
}

// Names returns the binding names of category c in declaration order.
func (m BindingMap) Names(c Category) []string {
	var names []string
	for _, b := range m.Bindings {
		if b.Category == c {
			names = append(names, b.Name)
		}
	}
	return names
}

// Category returns the category of name and whether it is bound.
func (m BindingMap) Category(name string) (Category, bool) {
	for _, b := range m.Bindings {
		if b.Name == name {
			return b.Category, true
		}
	}
	return CategoryOther, false
}

// Add appends a binding unless name is already bound.
func (m *BindingMap) Add(name string, c Category) {
	if _, ok := m.Category(name); ok {
		return
	}
	m.Bindings = append(m.Bindings, Binding{Name: name, Category: c})
}
