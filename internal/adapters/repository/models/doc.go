// Package models holds the GORM table models and their mapping to domain types.
package models
