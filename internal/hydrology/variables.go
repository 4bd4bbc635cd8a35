package hydrology

// Variable identifies one hydrological/weather quantity tracked by the proxy.
// Keys outside the catalog are passed through to the upstream as-is and get
// default metadata.
type Variable string

const (
	Precipitation      Variable = "precipitation"
	SoilMoisture       Variable = "soilMoisture"
	Runoff             Variable = "runoff"
	Evapotranspiration Variable = "evapotranspiration"
	Temperature        Variable = "temperature"
	Humidity           Variable = "humidity"
)

// Metadata describes a variable's upstream dataset and presentation strings.
type Metadata struct {
	DatasetID   string
	Unit        string
	Description string
}

// catalog maps each known variable to its GES DISC Data Rods dataset.
// Static, process-wide configuration; never mutated after init.
var catalog = map[Variable]Metadata{
	Precipitation:      {"GPM_3IMERGDF_06_precipitation", "mm/day", "Daily precipitation from GPM IMERG"},
	SoilMoisture:       {"GLDAS_NOAH025_3H_2_1_SoilMoi0_10cm_inst", "m³/m³", "Soil moisture content (0-10cm depth)"},
	Runoff:             {"GLDAS_NOAH025_3H_2_1_Qs_acc", "mm/day", "Surface runoff"},
	Evapotranspiration: {"GLDAS_NOAH025_3H_2_1_Evap_tavg", "mm/day", "Evapotranspiration rate"},
	Temperature:        {"GLDAS_NOAH025_3H_2_1_Tair_f_inst", "°C", "Air temperature at 2m height"},
	Humidity:           {"GLDAS_NOAH025_3H_2_1_Qair_f_inst", "%", "Relative humidity"},
}

// Known reports whether v is part of the static catalog.
func (v Variable) Known() bool {
	_, ok := catalog[v]
	return ok
}

// Meta returns the variable's metadata. Unknown keys keep their raw value as
// the dataset identifier and get placeholder unit/description.
func (v Variable) Meta() Metadata {
	if m, ok := catalog[v]; ok {
		return m
	}
	return Metadata{
		DatasetID:   string(v),
		Unit:        "units",
		Description: "Unknown parameter",
	}
}

// KnownVariables returns the catalog keys in a stable order.
func KnownVariables() []Variable {
	return []Variable{
		Precipitation,
		SoilMoisture,
		Runoff,
		Evapotranspiration,
		Temperature,
		Humidity,
	}
}
