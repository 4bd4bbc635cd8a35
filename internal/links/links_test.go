package links

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testConfig = Config{
	GiovanniBaseURL:  "https://giovanni.gsfc.nasa.gov/giovanni",
	WorldviewBaseURL: "https://worldview.earthdata.nasa.gov",
	EarthdataBaseURL: "https://search.earthdata.nasa.gov",
	CptecBaseURL:     "https://satellite.cptec.inpe.br/repositorio",
}

var testNow = time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)

func TestGiovanni(t *testing.T) {
	url := testConfig.Giovanni(37.7749, -122.4194, "", 0, testNow)

	assert.Contains(t, url, "https://giovanni.gsfc.nasa.gov/giovanni/#")
	assert.Contains(t, url, "service=ArAvTs")
	assert.Contains(t, url, "data="+DefaultGiovanniVariable)
	assert.Contains(t, url, "starttime=2025-09-07")
	assert.Contains(t, url, "endtime=2025-10-07")
	assert.Contains(t, url, "portal=GIOVANNI")
}

func TestGiovanniCustomWindow(t *testing.T) {
	url := testConfig.Giovanni(0, 0, "GLDAS_NOAH025_3H_2_1_Tair_f_inst", 7, testNow)

	assert.Contains(t, url, "data=GLDAS_NOAH025_3H_2_1_Tair_f_inst")
	assert.Contains(t, url, "starttime=2025-09-30")
}

func TestWorldview(t *testing.T) {
	url := testConfig.Worldview(10, 20, "", testNow)

	assert.Contains(t, url, "https://worldview.earthdata.nasa.gov/?v=18,8,22,12")
	assert.Contains(t, url, "t=2025-10-07")
	assert.Contains(t, url, "l="+DefaultWorldviewLayers)
}

func TestEarthdataSearch(t *testing.T) {
	url := testConfig.EarthdataSearch(10, 20, "")

	assert.Contains(t, url, "https://search.earthdata.nasa.gov/search?sb=19,9,21,11")
	assert.Contains(t, url, "q=precipitation%2Ctemperature")
}

func TestCptec(t *testing.T) {
	cptec := testConfig.Cptec(-23.55, -46.63, testNow) // São Paulo

	assert.True(t, cptec.Available)
	assert.Contains(t, cptec.ForecastURL, "goes16_ret_ch13_ams_20251007.jpg")
	assert.Contains(t, cptec.RadarURL, "radar_ppi_ams.gif")
}

func TestInSouthAmerica(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"São Paulo", -23.55, -46.63, true},
		{"Bogotá", 4.71, -74.07, true},
		{"San Francisco", 37.77, -122.42, false},
		{"London", 51.5, -0.12, false},
		{"northern bound", 15, -50, true},
		{"just past northern bound", 15.1, -50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InSouthAmerica(tt.lat, tt.lng))
		})
	}
}
