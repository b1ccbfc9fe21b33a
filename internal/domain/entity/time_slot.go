package entity

import (
	"fmt"
	"strings"
)

// TimeSlot franja horaria que determina qué categorías se muestran en la tienda.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
	TimeSlotNight     TimeSlot = "night"
)

// TimeSlots lista las franjas válidas en orden del día.
var TimeSlots = []TimeSlot{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening, TimeSlotNight}

// ParseTimeSlot valida y normaliza una franja horaria.
func ParseTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range TimeSlots {
		if v == slot {
			return slot, nil
		}
	}
	return "", fmt.Errorf("franja horaria desconocida: %q", s)
}
