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

package command

import (
	"fmt"
	"net/http"
	"time"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/srv"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

const RequestTimeout = 5 * time.Second

// ApiClient talks to the API server of a running read command
type ApiClient struct {
	*config.Config
	ApiPrefix string
	req       *req.Req
}

func NewApiClient(cfg *config.Config) *ApiClient {
	r := req.New()
	r.SetTimeout(RequestTimeout)
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s/api", cfg.ApiConfig.Endpoint()),
		req:       r,
	}
}

func (c *ApiClient) get(path string, v interface{}) error {
	r, err := c.req.Get(c.ApiPrefix + path)
	if err != nil {
		return err
	}
	if r.Response().StatusCode != http.StatusOK {
		return ErrApiStatus{Path: path, Status: r.Response().Status, Message: r.String()}
	}
	return r.ToJSON(v)
}

// Readings returns the latest reading of every sensor seen so far
func (c *ApiClient) Readings() ([]stream.Record, error) {
	var records []stream.Record
	if err := c.get("/readings", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Reading returns the latest reading of one sensor
func (c *ApiClient) Reading(sensor string) (*stream.Record, error) {
	record := &stream.Record{}
	if err := c.get("/readings/"+sensor, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Stats returns the counters of the running receiver
func (c *ApiClient) Stats() (*stream.Stats, error) {
	stats := &stream.Stats{}
	if err := c.get("/stats", stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Sensors returns the sensor table of the server
func (c *ApiClient) Sensors() ([]srv.SensorDescription, error) {
	var sensors []srv.SensorDescription
	if err := c.get("/sensors", &sensors); err != nil {
		return nil, err
	}
	return sensors, nil
}
