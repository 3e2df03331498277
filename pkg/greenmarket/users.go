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

package greenmarket

import (
	"net/http"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
	"github.com/icqmula/greenmarket-api-testing/pkg/expect"
	"github.com/icqmula/greenmarket-api-testing/pkg/scenario"
)

// Users registers the customer, logs in and reads the profile. It produces
// the token and user ID every authenticated case needs.
func (c *Catalog) Users() scenario.Module {
	customer := c.Customer

	return scenario.Module{
		Name: ModuleUsers,
		Cases: []scenario.Case{
			{
				ID:          "CP-001",
				Order:       1,
				Description: "register a new user",
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.RegisterUser(),
					Body:   scenario.StaticBody(customer.Registration()),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusCreated),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("userId"),
					expect.Equal("email", customer.Email),
					expect.Absent("password"),
					expect.Present("createdAt"),
					expect.MaxElapsed(c.ResponseTime),
					expect.MatchesSchema(SchemaRegisteredUser, MustSchema(SchemaRegisteredUser)),
				},
				Capture: []scenario.Capture{
					{Name: ArtifactUserID, Path: "userId", Sink: scenario.SinkUserID},
				},
			},
			{
				ID:          "CP-002",
				Order:       2,
				Description: "registering the same email again is rejected",
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.RegisterUser(),
					Body:   scenario.StaticBody(customer.Registration()),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusConflict),
					expect.ContentType(client.MediaTypeJSON),
					expect.ContainsFold("error", "already registered"),
				},
			},
			{
				ID:          "CP-003",
				Order:       3,
				Description: "log in with valid credentials",
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.Login(),
					Body:   scenario.StaticBody(customer.Credentials()),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusOK),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("token"),
					expect.Matches("token", TokenPattern),
					expect.Present("userId"),
					expect.Present("expiresIn"),
					expect.MaxElapsed(c.ResponseTime),
					expect.MatchesSchema(SchemaLoginResponse, MustSchema(SchemaLoginResponse)),
				},
				Capture: []scenario.Capture{
					{Name: ArtifactToken, Path: "token", Sink: scenario.SinkToken},
				},
			},
			{
				ID:          "CP-004",
				Order:       4,
				Description: "log in with the wrong password is rejected",
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.Login(),
					Body:   scenario.StaticBody(LoginRequest{Email: customer.Email, Password: WrongPassword}),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusUnauthorized),
					expect.ContentType(client.MediaTypeJSON),
					expect.ContainsFold("error", "invalid credentials"),
					expect.Absent("token"),
				},
			},
			{
				ID:          "CP-004b",
				Order:       5,
				Description: "log in as an unregistered user is rejected",
				Request: scenario.Request{
					Method: http.MethodPost,
					Path:   c.endpoints.Login(),
					Body:   scenario.StaticBody(LoginRequest{Email: "unregistered." + customer.Email, Password: customer.Password}),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusUnauthorized),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("error"),
					expect.Absent("token"),
				},
			},
			{
				ID:          "CP-005",
				Order:       6,
				Description: "read the authenticated user's profile",
				Auth:        scenario.AuthBearer,
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.Profile(),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusOK),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("userId"),
					expect.Present("name"),
					expect.Equal("email", customer.Email),
					expect.Present("phone"),
					expect.Present("createdAt"),
					expect.Absent("password"),
					expect.MaxElapsed(c.ResponseTime),
					expect.MatchesSchema(SchemaProfile, MustSchema(SchemaProfile)),
				},
			},
			{
				ID:          "CP-006",
				Order:       7,
				Description: "reading the profile without a token is rejected",
				Request: scenario.Request{
					Method: http.MethodGet,
					Path:   c.endpoints.Profile(),
				},
				Expect: []expect.Check{
					expect.Status(http.StatusUnauthorized),
					expect.ContentType(client.MediaTypeJSON),
					expect.ContainsFold("error", "authentication required"),
				},
			},
			{
				ID:          "CP-006b",
				Order:       8,
				Description: "reading the profile with a malformed token is rejected",
				Request: scenario.Request{
					Method:  http.MethodGet,
					Path:    c.endpoints.Profile(),
					Headers: map[string]string{"Authorization": "Bearer " + MalformedToken},
				},
				Expect: []expect.Check{
					expect.Status(http.StatusUnauthorized),
					expect.ContentType(client.MediaTypeJSON),
					expect.Present("error"),
				},
			},
		},
	}
}
