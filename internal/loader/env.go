package loader

// Var is one merged variable and the file that supplied its value.
type Var struct {
	Name   string
	Value  string
	Source string
}

// Env is an ordered mapping of variable names to values. Names keep the
// position of their first assignment; later assignments replace the value.
type Env struct {
	vars  []Var
	index map[string]int
}

// NewEnv returns an empty Env.
func NewEnv() *Env {
	return &Env{index: make(map[string]int)}
}

// Set assigns value to name, recording source as its origin.
func (e *Env) Set(name, value, source string) {
	if i, ok := e.index[name]; ok {
		e.vars[i].Value = value
		e.vars[i].Source = source
		return
	}
	e.index[name] = len(e.vars)
	e.vars = append(e.vars, Var{Name: name, Value: value, Source: source})
}

// Get returns the value of name.
func (e *Env) Get(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	i, ok := e.index[name]
	if !ok {
		return "", false
	}
	return e.vars[i].Value, true
}

// Lookup is Get with the os.LookupEnv signature.
func (e *Env) Lookup(name string) (string, bool) {
	return e.Get(name)
}

// Source returns the file that supplied name's value.
func (e *Env) Source(name string) string {
	if e == nil {
		return ""
	}
	if i, ok := e.index[name]; ok {
		return e.vars[i].Source
	}
	return ""
}

// Len returns the number of variables.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return len(e.vars)
}

// Names returns variable names in order.
func (e *Env) Names() []string {
	if e == nil {
		return nil
	}
	names := make([]string, len(e.vars))
	for i, v := range e.vars {
		names[i] = v.Name
	}
	return names
}

// Vars returns a copy of the variables in order.
func (e *Env) Vars() []Var {
	if e == nil {
		return nil
	}
	return append([]Var(nil), e.vars...)
}

// Map returns the variables as an unordered map.
func (e *Env) Map() map[string]string {
	m := make(map[string]string, e.Len())
	if e == nil {
		return m
	}
	for _, v := range e.vars {
		m[v.Name] = v.Value
	}
	return m
}
