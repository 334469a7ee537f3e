// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package api

// RootResponse is the response for GET /
type RootResponse struct {
	URL     string `json:"url"`
	Version string `json:"version"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// ErrorResponse is the error response format for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
