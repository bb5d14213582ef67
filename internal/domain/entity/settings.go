package entity

// AuthSettings holds the hashed role passcodes and the property profile
type AuthSettings struct {
	AdminHash      string  `json:"admin_hash"`
	RestaurantHash string  `json:"restaurant_hash"`
	RoomsHash      string  `json:"rooms_hash"`
	HotelName      string  `json:"hotel_name"`
	HotelEmail     string  `json:"hotel_email"`
	Address        string  `json:"address,omitempty"`
	GSTNumber      string  `json:"gst_number,omitempty"`
	CGSTRate       float64 `json:"cgst_rate,omitempty"` // 0 means the configured default
	IsConfigured   bool    `json:"is_configured"`
}

// PasscodeHash returns the stored hash for an access role.
func (a *AuthSettings) PasscodeHash(role string) string {
	switch role {
	case "ADMIN":
		return a.AdminHash
	case "RESTAURANT":
		return a.RestaurantHash
	case "ROOMS":
		return a.RoomsHash
	}
	return ""
}
