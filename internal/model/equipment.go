package model

import "time"

// AuthDateLayout is the layout of the authorization date column after
// spreadsheet cell coercion.
const AuthDateLayout = "2006-01-02"

// Equipment is one row of the certified radio equipment list.
//
// The combination of CertifiedName, EquipmentType, Model, AuthNumber,
// RadioType and AuthDate identifies a record; the same certification may
// appear in several spreadsheets and is stored once.
type Equipment struct {
	// ID is the database identifier. Zero until the record is stored.
	ID int64 `json:"id"`

	// CertifiedName is the name of the person or company that received
	// the construction design certification.
	CertifiedName string `json:"certified_name"`

	// EquipmentType is the kind of specified radio equipment
	// (the article number of the certification rules).
	EquipmentType string `json:"equipment_type"`

	// Model is the model name or number.
	Model string `json:"model"`

	// AuthNumber is the certification number.
	AuthNumber string `json:"auth_number"`

	// RadioType is the radio wave type and frequency description.
	RadioType string `json:"radio_type"`

	// IsApplied1421 is the mark column of the list; it is non-empty when
	// the special provision labelled 1421 applies.
	IsApplied1421 string `json:"is_applied_1421"`

	// AuthDate is the date the certification was granted.
	AuthDate time.Time `json:"auth_date"`

	// Note holds free-form remarks from the list.
	Note string `json:"note"`

	// File is the spreadsheet the record was imported from.
	File string `json:"file"`
}
