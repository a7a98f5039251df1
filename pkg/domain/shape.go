package domain

// Shape is one motif piece the customer can work into the puzzle.
type Shape struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShapeCatalog is the fixed set of motif shapes offered across all tiers.
var ShapeCatalog = []Shape{
	{ID: "heart", Name: "Heart"},
	{ID: "star", Name: "Star"},
	{ID: "moon", Name: "Crescent Moon"},
	{ID: "house", Name: "House"},
	{ID: "tree", Name: "Oak Tree"},
	{ID: "bird", Name: "Sparrow"},
	{ID: "anchor", Name: "Anchor"},
	{ID: "key", Name: "Key"},
	{ID: "paw", Name: "Paw Print"},
	{ID: "mountain", Name: "Mountain"},
	{ID: "wave", Name: "Wave"},
	{ID: "compass", Name: "Compass"},
	{ID: "bicycle", Name: "Bicycle"},
	{ID: "teapot", Name: "Teapot"},
	{ID: "guitar", Name: "Guitar"},
	{ID: "plane", Name: "Paper Plane"},
	{ID: "book", Name: "Open Book"},
	{ID: "rose", Name: "Rose"},
}

var shapeSet = func() map[string]bool {
	m := make(map[string]bool, len(ShapeCatalog))
	for _, s := range ShapeCatalog {
		m[s.ID] = true
	}
	return m
}()

// ValidShape returns true if id names a catalog shape.
func ValidShape(id string) bool {
	return shapeSet[id]
}

// ShapeName returns the display name for a shape id, or the id itself
// when the catalog no longer carries it.
func ShapeName(id string) string {
	for _, s := range ShapeCatalog {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
