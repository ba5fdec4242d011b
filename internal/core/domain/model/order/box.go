package order

// Box is a packed carton measured at the warehouse. When an order has boxes,
// its volume is computed from them instead of the declared items.
type Box struct {
	dimensions Dimensions
}

func NewBox(dimensions Dimensions) Box {
	return Box{dimensions: dimensions}
}

func (b Box) Dimensions() Dimensions {
	return b.dimensions
}
