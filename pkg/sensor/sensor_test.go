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

import (
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		index     Index
		name      string
		frameID   uint8
		unit      Unit
		precision uint8
	}{
		{RxRSSI1, "1RSS", frameLink, UnitDB, 0},
		{TxPower, "TPWR", frameLink, UnitMilliwatts, 0},
		{TxFPS, "TFPS", frameLinkTX, UnitHertz, 0},
		{BattVoltage, "RxBt", frameBattery, UnitVolts, 1},
		{GPSHeading, "Hdg", frameGPS, UnitDegree, 2},
		{AttitudeYaw, "Yaw", frameAttitude, UnitRadians, 3},
		{FlightMode, "FM", frameFlightMode, UnitText, 0},
		{BaroAltitude, "Alt", frameBaroAltitude, UnitMeters, 2},
		{Unknown, "UNKNOWN", 0, UnitRaw, 0},
		{Index(200), "UNKNOWN", 0, UnitRaw, 0},
	}

	for _, tt := range tests {
		t.Run(tt.index.String(), func(t *testing.T) {
			d := Lookup(tt.index)
			if d.Name != tt.name {
				t.Errorf("Name = %q, want %q", d.Name, tt.name)
			}
			if d.FrameID != tt.frameID {
				t.Errorf("FrameID = 0x%02x, want 0x%02x", d.FrameID, tt.frameID)
			}
			if d.Unit != tt.unit {
				t.Errorf("Unit = %v, want %v", d.Unit, tt.unit)
			}
			if d.Precision != tt.precision {
				t.Errorf("Precision = %d, want %d", d.Precision, tt.precision)
			}
		})
	}
}

func TestIndexesAreUnique(t *testing.T) {
	indexes := Indexes()
	if len(indexes) != int(Unknown) {
		t.Fatalf("len(Indexes()) = %d, want %d", len(indexes), Unknown)
	}
	seen := map[string]Index{}
	for _, i := range indexes {
		key := i.String()
		if other, ok := seen[key]; ok {
			t.Errorf("%v and %v share key %q", other, i, key)
		}
		seen[key] = i
		parsed, ok := ParseIndex(key)
		if !ok || parsed != i {
			t.Errorf("ParseIndex(%q) = %v, %v; want %v", key, parsed, ok, i)
		}
	}
	if _, ok := ParseIndex("unknown"); ok {
		t.Errorf("ParseIndex(unknown) must not resolve")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		reading Reading
		want    string
	}{
		{Int(BattVoltage, 123), "12.3V"},
		{Int(BattVoltage, 5), "0.5V"},
		{Int(BattCurrent, -7), "-0.7A"},
		{Int(AttitudePitch, 1571), "1.571rad"},
		{Int(AttitudeRoll, -12), "-0.012rad"},
		{Int(GPSLatitude, 12345678), "12.345678deg"},
		{Int(GPSLongitude, -500000), "-0.500000deg"},
		{Int(GPSAltitude, -3), "-3m"},
		{Int(TxPower, 100), "100mW"},
		{Int(GPSSatellites, 9), "9"},
		{Text(FlightMode, "ANGL"), "ANGL"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.reading); got != tt.want {
			t.Errorf("FormatValue(%v=%d) = %q, want %q", tt.reading.Index, tt.reading.Value, got, tt.want)
		}
	}

	if got := Format(Int(BattRemaining, 80)); got != "Bat% 80%" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFloat(t *testing.T) {
	if got := Int(BattVoltage, 123).Float(); got < 12.299 || got > 12.301 {
		t.Errorf("Float() = %v, want 12.3", got)
	}
	if got := Int(GPSLatitude, 55750000).Float(); got < 55.7499 || got > 55.7501 {
		t.Errorf("Float() = %v, want 55.75", got)
	}
	if got := Text(FlightMode, "ACRO").Float(); got != 0 {
		t.Errorf("Float() of text = %v, want 0", got)
	}
}
