package models

// WasteCategory describes one selectable waste type.
type WasteCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WasteCategories is the fixed catalogue of selectable waste types.
var WasteCategories = []WasteCategory{
	{ID: "construction", Title: "Construction Waste", Description: "Building materials and renovation debris"},
	{ID: "household", Title: "Household Waste", Description: "General household items and furniture"},
	{ID: "garden", Title: "Garden Waste", Description: "Green waste and landscaping materials"},
	{ID: "commercial", Title: "Commercial Waste", Description: "Business and office clearance"},
}

// KnownWasteCategory reports whether id names a catalogue entry.
func KnownWasteCategory(id string) bool {
	for _, c := range WasteCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}
