package entity

// RecordKind identifies which entity a tracking code belongs to.
type RecordKind string

const (
	KindBooking           RecordKind = "BOOKING"
	KindCustomTourRequest RecordKind = "CUSTOM_TOUR_REQUEST"
	KindCustomBooking     RecordKind = "CUSTOM_BOOKING"
)

// Prefix returns the tracking code prefix for the kind.
func (k RecordKind) Prefix() string {
	switch k {
	case KindBooking:
		return "BK"
	case KindCustomTourRequest:
		return "CTR"
	case KindCustomBooking:
		return "CB"
	default:
		return ""
	}
}

func (k RecordKind) String() string {
	return string(k)
}
