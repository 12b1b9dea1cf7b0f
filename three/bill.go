package three

// Bill is the v3 bill resource.
type Bill struct {
	resource
}

// NewBill binds a Bill handle to s.
func NewBill(s Sender) *Bill {
	return &Bill{resource{client: s, collection: "bills"}}
}

// Service returns "Bill".
func (b *Bill) Service() string { return "Bill" }
