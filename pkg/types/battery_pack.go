package types

import "errors"

// BatteryPack is a battery pack asset with its latest electrical readings.
type BatteryPack struct {
	ID                    string  `json:"id"`
	AssetTag              string  `json:"asset_tag"`
	StatusLabel           string  `json:"status_label"`
	Model                 string  `json:"model"`
	CompanyName           string  `json:"company_name"`
	WarrantyMonths        int     `json:"warranty_duration"`
	Location              string  `json:"location"`
	Manufacturer          string  `json:"manufacturer"`
	CellChemistry         string  `json:"battery_cell_chemistry"`
	CellType              string  `json:"battery_cell_type"`
	NominalVoltage        float64 `json:"battery_pack_nominal_voltage"`
	NominalChargeCapacity float64 `json:"battery_pack_nominal_charge_capacity"`
	BMSType               string  `json:"bms_type"`
	PackState             string  `json:"battery_pack_state"`
	SoC                   float64 `json:"SoC"`
	SoH                   float64 `json:"SoH"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

// ApplyDefaults fills fields the create form defaults.
func (b *BatteryPack) ApplyDefaults() {
	if b.StatusLabel == "" {
		b.StatusLabel = StatusAvailable
	}
}

// Validate checks the fields the create form requires.
func (b *BatteryPack) Validate() error {
	var errs []error
	if b.AssetTag == "" {
		errs = append(errs, ErrAssetTagRequired)
	}
	if b.NominalChargeCapacity <= 0 {
		errs = append(errs, ErrCapacityRequired)
	}
	return errors.Join(errs...)
}
