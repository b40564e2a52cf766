package types

import "errors"

// Asset status labels used by the demo catalog.
const (
	StatusAvailable     = "Available"
	StatusInMaintenance = "In Maintenance"
	StatusCheckedOut    = "Checked Out"
)

// Create-form validation errors.
var (
	ErrAssetTagRequired = errors.New("asset tag is required")
	ErrModelRequired    = errors.New("model is required")
	ErrCompanyRequired  = errors.New("company is required")
	ErrCapacityRequired = errors.New("capacity is required")
)

// Vehicle is a vehicle asset. Dates are kept as the date strings the
// catalog stores ("2024-04-10").
type Vehicle struct {
	ID                        string  `json:"id"`
	AssetTag                  string  `json:"asset_tag"`
	CategoryName              string  `json:"category_name"`
	Company                   string  `json:"company"`
	Model                     string  `json:"model"`
	Serial                    string  `json:"serial"`
	StatusLabel               string  `json:"status_label"`
	VehicleRegistrationNumber *string `json:"vehicle_registration_number"`
	LastCheckin               *string `json:"last_checkin"`
	LastCheckout              *string `json:"last_checkout"`
	CreatedAt                 string  `json:"created_at"`
	UpdatedAt                 string  `json:"updated_at"`
}

// ApplyDefaults fills fields the create form defaults.
func (v *Vehicle) ApplyDefaults() {
	if v.StatusLabel == "" {
		v.StatusLabel = StatusAvailable
	}
}

// Validate checks the fields the create form requires.
func (v *Vehicle) Validate() error {
	var errs []error
	if v.AssetTag == "" {
		errs = append(errs, ErrAssetTagRequired)
	}
	if v.Model == "" {
		errs = append(errs, ErrModelRequired)
	}
	if v.Company == "" {
		errs = append(errs, ErrCompanyRequired)
	}
	return errors.Join(errs...)
}
