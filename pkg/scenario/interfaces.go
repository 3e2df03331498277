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

package scenario

import (
	"context"

	"github.com/icqmula/greenmarket-api-testing/pkg/client"
)

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

// Sender issues a single request, *client.Client is the real implementation.
type Sender interface {
	Send(ctx context.Context, config client.RequestConfig, request client.Request) (*client.Response, error)
}
