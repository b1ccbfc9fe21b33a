package entity

// Category categoría del catálogo. SortOrder define el orden de despliegue y TimeSlots
// las franjas horarias en que se muestra.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	SortOrder   int        `json:"sortOrder"`
	IsActive    bool       `json:"isActive"`
	TimeSlots   []TimeSlot `json:"timeSlots"`
}

// HasTimeSlot indica si la categoría se muestra en la franja dada.
func (c *Category) HasTimeSlot(slot TimeSlot) bool {
	for _, s := range c.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
