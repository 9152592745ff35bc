package orm

var _ CloneableData = (*Counter)(nil)

// Validate is always succesful
func (c *Counter) Validate() error {
	return nil
}

// Copy produces another counter with the same value
func (c *Counter) Copy() CloneableData {
	return &Counter{
		Count: c.Count,
	}
}

// NewCounter returns an initialized counter object with this key
func NewCounter(key []byte) Object {
	return NewSimpleObj(key, &Counter{})
}
