/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package sensor holds the static table of CRSF telemetry sensors and
// the reading type produced by the frame decoder.
package sensor

// Frame ids which carry sensor values. They duplicate layers.FrameType
// values so that the table has no dependency on the decoding layers.
const (
	frameGPS          uint8 = 0x02
	frameVario        uint8 = 0x07
	frameBattery      uint8 = 0x08
	frameBaroAltitude uint8 = 0x09
	frameLink         uint8 = 0x14
	frameLinkRX       uint8 = 0x1c
	frameLinkTX       uint8 = 0x1d
	frameAttitude     uint8 = 0x1e
	frameFlightMode   uint8 = 0x21
)

// Index identifies one physical quantity independently of the frame carrying it
type Index uint8

const (
	RxRSSI1 Index = iota
	RxRSSI2
	RxQuality
	RxSNR
	RxAntenna
	RFMode
	TxPower
	TxRSSI
	TxQuality
	TxSNR
	RxRSSIPercent
	RxRFPower
	TxRSSIPercent
	TxRFPower
	TxFPS
	BattVoltage
	BattCurrent
	BattCapacity
	BattRemaining
	GPSLatitude
	GPSLongitude
	GPSGroundSpeed
	GPSHeading
	GPSAltitude
	GPSSatellites
	AttitudePitch
	AttitudeRoll
	AttitudeYaw
	FlightMode
	VerticalSpeed
	BaroAltitude
	Unknown
)

// Descriptor is the static metadata of a sensor
type Descriptor struct {
	FrameID   uint8
	SubIndex  uint8
	Unit      Unit
	Precision uint8
	Name      string
}

type entry struct {
	Descriptor
	key string
}

var table = [...]entry{
	RxRSSI1:        {Descriptor{frameLink, 0, UnitDB, 0, "1RSS"}, "rx-rssi1"},
	RxRSSI2:        {Descriptor{frameLink, 1, UnitDB, 0, "2RSS"}, "rx-rssi2"},
	RxQuality:      {Descriptor{frameLink, 2, UnitPercent, 0, "RQly"}, "rx-quality"},
	RxSNR:          {Descriptor{frameLink, 3, UnitDB, 0, "RSNR"}, "rx-snr"},
	RxAntenna:      {Descriptor{frameLink, 4, UnitRaw, 0, "ANT"}, "rx-antenna"},
	RFMode:         {Descriptor{frameLink, 5, UnitRaw, 0, "RFMD"}, "rf-mode"},
	TxPower:        {Descriptor{frameLink, 6, UnitMilliwatts, 0, "TPWR"}, "tx-power"},
	TxRSSI:         {Descriptor{frameLink, 7, UnitDB, 0, "TRSS"}, "tx-rssi"},
	TxQuality:      {Descriptor{frameLink, 8, UnitPercent, 0, "TQly"}, "tx-quality"},
	TxSNR:          {Descriptor{frameLink, 9, UnitDB, 0, "TSNR"}, "tx-snr"},
	RxRSSIPercent:  {Descriptor{frameLinkRX, 0, UnitPercent, 0, "RRSP"}, "rx-rssi-percent"},
	RxRFPower:      {Descriptor{frameLinkRX, 1, UnitDBm, 0, "RPWR"}, "rx-rf-power"},
	TxRSSIPercent:  {Descriptor{frameLinkTX, 0, UnitPercent, 0, "TRSP"}, "tx-rssi-percent"},
	TxRFPower:      {Descriptor{frameLinkTX, 1, UnitDBm, 0, "TPWR"}, "tx-rf-power"},
	TxFPS:          {Descriptor{frameLinkTX, 2, UnitHertz, 0, "TFPS"}, "tx-fps"},
	BattVoltage:    {Descriptor{frameBattery, 0, UnitVolts, 1, "RxBt"}, "battery-voltage"},
	BattCurrent:    {Descriptor{frameBattery, 1, UnitAmps, 1, "Curr"}, "battery-current"},
	BattCapacity:   {Descriptor{frameBattery, 2, UnitMAh, 0, "Capa"}, "battery-capacity"},
	BattRemaining:  {Descriptor{frameBattery, 3, UnitPercent, 0, "Bat%"}, "battery-remaining"},
	GPSLatitude:    {Descriptor{frameGPS, 0, UnitGPSLatitude, 0, "GPS"}, "gps-latitude"},
	GPSLongitude:   {Descriptor{frameGPS, 0, UnitGPSLongitude, 0, "GPS"}, "gps-longitude"},
	GPSGroundSpeed: {Descriptor{frameGPS, 2, UnitKMH, 1, "GSpd"}, "gps-ground-speed"},
	GPSHeading:     {Descriptor{frameGPS, 3, UnitDegree, 2, "Hdg"}, "gps-heading"},
	GPSAltitude:    {Descriptor{frameGPS, 4, UnitMeters, 0, "Alt"}, "gps-altitude"},
	GPSSatellites:  {Descriptor{frameGPS, 5, UnitRaw, 0, "Sats"}, "gps-satellites"},
	AttitudePitch:  {Descriptor{frameAttitude, 0, UnitRadians, 3, "Ptch"}, "attitude-pitch"},
	AttitudeRoll:   {Descriptor{frameAttitude, 1, UnitRadians, 3, "Roll"}, "attitude-roll"},
	AttitudeYaw:    {Descriptor{frameAttitude, 2, UnitRadians, 3, "Yaw"}, "attitude-yaw"},
	FlightMode:     {Descriptor{frameFlightMode, 0, UnitText, 0, "FM"}, "flight-mode"},
	VerticalSpeed:  {Descriptor{frameVario, 0, UnitMetersPerSecond, 2, "VSpd"}, "vertical-speed"},
	BaroAltitude:   {Descriptor{frameBaroAltitude, 0, UnitMeters, 2, "Alt"}, "baro-altitude"},
	Unknown:        {Descriptor{0, 0, UnitRaw, 0, "UNKNOWN"}, "unknown"},
}

// Lookup returns the descriptor of the sensor. Indexes outside the table
// resolve to the Unknown descriptor.
func Lookup(i Index) Descriptor {
	if int(i) >= len(table) {
		return table[Unknown].Descriptor
	}
	return table[i].Descriptor
}

// Indexes returns all known sensor indexes in table order, Unknown excluded
func Indexes() []Index {
	result := make([]Index, 0, int(Unknown))
	for i := Index(0); i < Unknown; i++ {
		result = append(result, i)
	}
	return result
}

// String returns a stable identifier of the sensor, e.g. gps-altitude
func (i Index) String() string {
	if int(i) >= len(table) {
		return table[Unknown].key
	}
	return table[i].key
}

// ParseIndex is the inverse of Index.String
func ParseIndex(key string) (Index, bool) {
	for i := range table {
		if table[i].key == key && Index(i) != Unknown {
			return Index(i), true
		}
	}
	return Unknown, false
}
