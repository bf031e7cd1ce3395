package models

// Vehicle identifies a car tier offered for transfers.
// The set is closed: adding a tier means adding a constant here and a
// price column pair on the routes table.
type Vehicle string

const (
	VehicleVito    Vehicle = "Vito"
	VehicleDacia   Vehicle = "Dacia"
	VehicleOctavia Vehicle = "Octavia"
	VehicleKaroq   Vehicle = "Karoq"
)

// Vehicles returns all supported vehicle classes in display order.
func Vehicles() []Vehicle {
	return []Vehicle{VehicleVito, VehicleDacia, VehicleOctavia, VehicleKaroq}
}

// Valid reports whether v is a known vehicle class.
func (v Vehicle) Valid() bool {
	switch v {
	case VehicleVito, VehicleDacia, VehicleOctavia, VehicleKaroq:
		return true
	}
	return false
}

// TripType selects the pricing mode for a booking.
type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
	TripHourly    TripType = "hourly"
)

// Valid reports whether t is a known trip type.
func (t TripType) Valid() bool {
	switch t {
	case TripOneWay, TripRoundTrip, TripHourly:
		return true
	}
	return false
}
