package models

// DateAvailability свободные места за день
type DateAvailability struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
}

// TimeAvailability свободные места в слоте
type TimeAvailability struct {
	Time      string `json:"time"`
	Remaining int    `json:"remaining"`
}

// SetCapacityRequest задание вместимости слота администратором
type SetCapacityRequest struct {
	Type     string `json:"type"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
}
