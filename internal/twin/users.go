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

package twin

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/icqmula/greenmarket-api-testing/pkg/greenmarket"
)

func (t *Twin) register(w http.ResponseWriter, r *http.Request) {
	var request greenmarket.RegisterUserRequest

	if !decode(w, r, &request) {
		return
	}

	if request.Name == "" || request.Password == "" || !strings.Contains(request.Email, "@") {
		writeError(w, http.StatusBadRequest, "Name, a valid email and password are required")
		return
	}

	u := &user{
		name:      request.Name,
		email:     request.Email,
		password:  request.Password,
		phone:     request.Phone,
		createdAt: t.now(),
	}

	if !t.store.register(u) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}

	view := u.view()

	writeJSON(w, http.StatusCreated, greenmarket.User{
		UserID:    view.UserID,
		Email:     view.Email,
		CreatedAt: view.CreatedAt,
	})
}

func (t *Twin) login(w http.ResponseWriter, r *http.Request) {
	var request greenmarket.LoginRequest

	if !decode(w, r, &request) {
		return
	}

	u, ok := t.store.userByEmail(request.Email)
	if !ok || subtle.ConstantTimeCompare([]byte(u.password), []byte(request.Password)) != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := t.tokens.issue(u.id, t.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Unable to issue token")
		return
	}

	writeJSON(w, http.StatusOK, greenmarket.LoginResponse{
		Token:     token,
		UserID:    u.id,
		ExpiresIn: int(t.ttl.Seconds()),
	})
}

func (t *Twin) profile(w http.ResponseWriter, r *http.Request) {
	u, ok := t.store.userByID(callerID(r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	writeJSON(w, http.StatusOK, u.view())
}
