// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Exchanges on which Vietnamese equities are listed.
const (
	ExchangeHOSE  = "HOSE"
	ExchangeHNX   = "HNX"
	ExchangeUPCOM = "UPCOM"
)

// Symbol represents a listed Vietnamese stock.
// It carries the ticker code, the company name, the exchange it trades on,
// and display ordering.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Exchange  string    `gorm:"size:10;not null;index"`
	Industry  string    `gorm:"size:100"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
