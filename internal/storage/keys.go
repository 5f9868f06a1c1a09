package storage

const (
	KeyCustomers     = "hotel_customers"
	KeyRooms         = "hotel_rooms"
	KeyRoomTypes     = "hotel_room_types"
	KeyReservations  = "hotel_reservations"
	KeyHousekeeping  = "hotel_housekeeping"
	KeyBills         = "hotel_bills"
	KeyCurrencyRates = "hotel_currency_rates"
	KeyAudit         = "hotel_audit"

	// Stay-type combinations are managed separately from the hotel_* collections.
	KeyStayTypes = "stay_type_combinations"

	KeySchemaVersion = "hotel_schema_version"
)
