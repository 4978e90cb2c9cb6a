/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package source

import "errors"

var (
	// ErrExportNotFound is returned when no export exists for a vendor.
	ErrExportNotFound = errors.New("export not found")
	// ErrUnknownSource is returned for a source kind other than file or nats.
	ErrUnknownSource = errors.New("unknown source")
	errNotConnected  = errors.New("not connected to NATS")
)
