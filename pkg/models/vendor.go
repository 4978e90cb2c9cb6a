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

// Package models holds the normalized firewall log record types shared by the
// parser, filter, aggregate and table packages.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVendor is returned when a vendor name is not recognized.
var ErrUnknownVendor = errors.New("unknown vendor")

// Vendor identifies the firewall product a record was exported from.
type Vendor string

const (
	VendorKaspersky Vendor = "kaspersky"
	VendorTPLink    Vendor = "tplink"
	VendorDLink     Vendor = "dlink"
)

// AllVendors lists every supported vendor in presentation order.
var AllVendors = []Vendor{VendorDLink, VendorTPLink, VendorKaspersky}

func (v Vendor) String() string {
	return string(v)
}

// Valid reports whether v is one of the supported vendors.
func (v Vendor) Valid() bool {
	switch v {
	case VendorKaspersky, VendorTPLink, VendorDLink:
		return true
	default:
		return false
	}
}

// ParseVendor maps a user supplied name ("D-Link", "tp-link", "Kaspersky") to a Vendor.
func ParseVendor(name string) (Vendor, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)

	v := Vendor(normalized)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVendor, name)
	}

	return v, nil
}
