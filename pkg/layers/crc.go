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

package layers

import (
	"github.com/sigurn/crc8"
)

// CRSF frames are protected by CRC-8/DVB-S2: poly 0xD5, init 0x00,
// no reflection, no final xor. It covers the frame type and payload.
var crcTable = crc8.MakeTable(crc8.CRC8_DVB_S2)

// Checksum returns the CRC-8/DVB-S2 of data
func Checksum(data []byte) uint8 {
	return crc8.Checksum(data, crcTable)
}

// frameChecksum computes the frame CRC without building a joint slice
func frameChecksum(frameType FrameType, payload []byte) uint8 {
	crc := crc8.Init(crcTable)
	crc = crc8.Update(crc, []byte{byte(frameType)}, crcTable)
	crc = crc8.Update(crc, payload, crcTable)
	return crc8.Complete(crc, crcTable)
}
