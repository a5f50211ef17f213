package atri

// Store holds the variables of an interpreter session. A name is declared iff
// it is present in the store, whether or not it has been assigned. Stores are
// not safe for concurrent use unless an implementation says otherwise.
type Store interface {
	// Lookup returns the value of a variable and whether it is declared. An
	// unassigned variable has the value Undefined.
	Lookup(name string) (v Value, declared bool, err error)
	// Declare declares a variable without assigning it.
	Declare(name string) error
	// Set assigns a variable, declaring it if needed.
	Set(name string, v Value) error
	// Names returns the declared names in sorted order.
	Names() ([]string, error)
	// Clear removes all variables.
	Clear() error
}

// Memory is a Store held in a map.
type Memory struct {
	vars map[string]Value
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{vars: make(map[string]Value)}
}

// Lookup returns the value of name and whether it is declared.
func (m *Memory) Lookup(name string) (Value, bool, error) {
	v, ok := m.vars[name]
	return v, ok, nil
}

// Declare declares name with the value Undefined.
func (m *Memory) Declare(name string) error {
	m.vars[name] = Undefined
	return nil
}

// Set assigns v to name.
func (m *Memory) Set(name string, v Value) error {
	m.vars[name] = v
	return nil
}

// Names returns the declared names in sorted order.
func (m *Memory) Names() ([]string, error) {
	names := make([]string, 0, len(m.vars))
	for k := range m.vars {
		names = append(names, k)
	}
	sortstrs(names)
	return names, nil
}

// Clear removes all variables.
func (m *Memory) Clear() error {
	for k := range m.vars {
		delete(m.vars, k)
	}
	return nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

var _ Store = (*Memory)(nil)
