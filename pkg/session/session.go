/*
Copyright 2026 the GreenMarket Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package session holds the authentication state produced by one test run.
package session

import (
	"sync"

	"k8s.io/utils/ptr"
)

// Store is the run scoped token and user ID. It starts empty, is written by
// the registration and login cases and is never cleared during a run.
// Modules may run concurrently, hence the lock.
type Store struct {
	lock   sync.RWMutex
	token  *string
	userID *string
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// SetToken records the bearer token returned by login.
func (s *Store) SetToken(token string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.token = ptr.To(token)
}

// Token returns the bearer token, if one has been set.
func (s *Store) Token() (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return ptr.Deref(s.token, ""), s.token != nil
}

// SetUserID records the ID of the registered user.
func (s *Store) SetUserID(id string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.userID = ptr.To(id)
}

// UserID returns the user ID, if one has been set.
func (s *Store) UserID() (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return ptr.Deref(s.userID, ""), s.userID != nil
}
