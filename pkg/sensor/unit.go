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

package sensor

type Unit uint8

const (
	UnitRaw Unit = iota
	UnitVolts
	UnitAmps
	UnitMAh
	UnitPercent
	UnitMilliwatts
	UnitDB
	UnitDBm
	UnitDegree
	UnitRadians
	UnitMeters
	UnitMetersPerSecond
	UnitKMH
	UnitHertz
	UnitGPSLatitude
	UnitGPSLongitude
	UnitText
)

var unitSymbols = map[Unit]string{
	UnitRaw:             "",
	UnitVolts:           "V",
	UnitAmps:            "A",
	UnitMAh:             "mAh",
	UnitPercent:         "%",
	UnitMilliwatts:      "mW",
	UnitDB:              "dB",
	UnitDBm:             "dBm",
	UnitDegree:          "deg",
	UnitRadians:         "rad",
	UnitMeters:          "m",
	UnitMetersPerSecond: "m/s",
	UnitKMH:             "km/h",
	UnitHertz:           "Hz",
	UnitGPSLatitude:     "deg",
	UnitGPSLongitude:    "deg",
	UnitText:            "",
}

// String returns the unit symbol, empty for raw and text values
func (u Unit) String() string {
	return unitSymbols[u]
}
