// Package entity contains the core business objects of the project.
package entity

import "time"

// Setting is one admin-editable key/value pair backing the storefront
// (store name, support email, and similar). Writes are upserts.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
