package three

// Collection is the v3 collection resource.
type Collection struct {
	resource
}

// NewCollection binds a Collection handle to s.
func NewCollection(s Sender) *Collection {
	return &Collection{resource{client: s, collection: "collections"}}
}

// Service returns "Collection".
func (c *Collection) Service() string { return "Collection" }
