package request

// LoginRequest represents a role passcode login
type LoginRequest struct {
	Role     string `json:"role" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}

// SetupRequest represents the first-time property setup
type SetupRequest struct {
	HotelName     string `json:"hotel_name" binding:"required,max=255"`
	HotelEmail    string `json:"hotel_email" binding:"required,email"`
	AdminPasscode string `json:"admin_passcode" binding:"required"`
}

// UpdateSettingsRequest represents a partial settings update. Passcodes maps
// an access role to its new passcode.
type UpdateSettingsRequest struct {
	HotelName  *string           `json:"hotel_name" binding:"omitempty,max=255"`
	HotelEmail *string           `json:"hotel_email" binding:"omitempty,email"`
	Address    *string           `json:"address"`
	GSTNumber  *string           `json:"gst_number" binding:"omitempty,max=32"`
	CGSTRate   *float64          `json:"cgst_rate" binding:"omitempty,min=0,max=50"`
	Passcodes  map[string]string `json:"passcodes"`
}
