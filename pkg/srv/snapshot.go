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

package srv

import (
	"sort"
	"sync"

	"jinr.ru/greenlab/go-crsf/pkg/sensor"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

// Snapshot keeps the latest sample of every sensor
type Snapshot struct {
	mu     sync.RWMutex
	latest map[sensor.Index]stream.Sample
}

func NewSnapshot() *Snapshot {
	return &Snapshot{latest: make(map[sensor.Index]stream.Sample)}
}

func (s *Snapshot) Handle(sample stream.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[sample.Reading.Index] = sample
	return nil
}

// Get returns the latest sample of the sensor
func (s *Snapshot) Get(index sensor.Index) (stream.Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sample, ok := s.latest[index]
	return sample, ok
}

// All returns the latest samples ordered by sensor index
func (s *Snapshot) All() []stream.Sample {
	s.mu.RLock()
	samples := make([]stream.Sample, 0, len(s.latest))
	for _, sample := range s.latest {
		samples = append(samples, sample)
	}
	s.mu.RUnlock()
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Reading.Index < samples[j].Reading.Index
	})
	return samples
}
