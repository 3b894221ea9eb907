package models

// Agenda maps doctor -> weekday name (LUNES..VIERNES) -> bookable "HH:MM" slots.
type Agenda map[string]map[string][]string
