package block

// Constant outputs a fixed value.
type Constant struct {
	val float32
}

func NewConstant(val float32) *Constant {
	return &Constant{val: val}
}

func (c *Constant) Kind() Kind { return KindConstant }

func (c *Constant) Step() {}

func (c *Constant) Mono() float32 { return c.val }

func (c *Constant) Value() float32 { return c.val }
