// Package viomi contains Viomi SE vacuum entity and its battery sensor.
package viomi

import (
	"github.com/go-home-io/viomise/plugins/device/enums"
)

const (
	// DefaultName is used when setup doesn't provide a display name.
	DefaultName = "Viomi SE"
	// Manufacturer reported in device info.
	Manufacturer = "Viomi"
	// Model reported in device info.
	Model = "Vacuum cleaner V-RVCLM21B"

	// Device misspells battery property, the key is kept as is.
	propBattery      = "battary_life"
	propRunState     = "run_state"
	propMode         = "mode"
	propIsMop        = "is_mop"
	propBoxType      = "box_type"
	propMopType      = "mop_type"
	propIsCharge     = "is_charge"
	propSuctionGrade = "suction_grade"

	modeSweepMop   = 2
	modeStandard   = 3
	modePointClean = 4

	actionStart = 1
	actionPause = 3

	// Upper bound of set_mop corrections per refresh.
	maxMopCorrections = 1
)

// AllProps lists every property requested from the device on each poll.
var AllProps = []string{
	"run_state",
	"mode",
	"err_state",
	"battary_life",
	"box_type",
	"mop_type",
	"s_time",
	"s_area",
	"suction_grade",
	"water_grade",
	"remember_map",
	"has_map",
	"is_mop",
	"has_newmap",
	"side_brush_life",
	"side_brush_hours",
	"main_brush_life",
	"main_brush_hours",
	"hypa_life",
	"hypa_hours",
	"mop_life",
	"mop_hours",
	"water_percent",
	"hw_info",
	"sw_info",
	"start_time",
	"order_time",
	"v_state",
	"zone_data",
	"repeat_state",
	"light_state",
	"is_charge",
	"is_work",
	"cur_mapid",
	"mop_route",
	"map_num",
}

// Alias keys expected by vacuum cards, derived from device properties.
var propAliases = []struct {
	alias  string
	source string
}{
	{alias: "main_brush_left", source: "main_brush_hours"},
	{alias: "side_brush_left", source: "side_brush_hours"},
	{alias: "filter_left", source: "hypa_hours"},
	{alias: "sensor_dirty_left", source: "mop_hours"},
	{alias: "cleaned_area", source: "s_area"},
	{alias: "cleaning_time", source: "s_time"},
	{alias: "battery", source: "battary_life"},
}

// FanSpeeds maps fan speed names to device suction grades.
var FanSpeeds = map[string]int{
	"Silent":   0,
	"Standard": 1,
	"Medium":   2,
	"Turbo":    3,
}

var stateCodeToStatus = map[int]enums.VacStatus{
	0: enums.VacIdle,
	1: enums.VacIdle,
	2: enums.VacPaused,
	3: enums.VacCleaning,
	4: enums.VacReturning,
	5: enums.VacDocked,
	6: enums.VacCleaning,
	7: enums.VacCleaning,
}
