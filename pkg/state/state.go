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

// Package state keeps the statistics of finished acquisition sessions.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-crsf/pkg/log"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

const (
	SessionsBucket = "sessions"
	OpenTimeout    = time.Second
)

// Session is one run of the receiver
type Session struct {
	ID    string       `json:"id"`
	Port  string       `json:"port"`
	Start time.Time    `json:"start"`
	End   time.Time    `json:"end"`
	Stats stream.Stats `json:"stats"`
}

// Duration returns how long the session lasted
func (s *Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// sessionKey sorts sessions by start time
func sessionKey(start time.Time) []byte {
	return []byte(fmt.Sprintf("%020d", start.UnixNano()))
}

type State struct {
	DB *bbolt.DB
}

// Open opens or creates the session database
func Open(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("error while opening session database %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(SessionsBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &State{DB: db}, nil
}

func (s *State) Close() error {
	return s.DB.Close()
}

// PutSession stores the session under its start time. An empty ID is set to the key.
func (s *State) PutSession(session *Session) error {
	key := sessionKey(session.Start)
	if session.ID == "" {
		session.ID = string(key)
	}
	log.Debug("Storing session %s", session.ID)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(SessionsBucket))
		if b == nil {
			return ErrBucketNotFound{Name: SessionsBucket}
		}
		data, err := yaml.Marshal(session)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// Sessions returns all stored sessions, oldest first
func (s *State) Sessions() ([]*Session, error) {
	var sessions []*Session
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(SessionsBucket))
		if b == nil {
			return ErrBucketNotFound{Name: SessionsBucket}
		}
		return b.ForEach(func(k, v []byte) error {
			session := &Session{}
			if err := yaml.Unmarshal(v, session); err != nil {
				return fmt.Errorf("error while unmarshalling session %s: %w", k, err)
			}
			sessions = append(sessions, session)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return sessions, nil
}
