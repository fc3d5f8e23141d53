package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// MedicalHistory carries the intake-form checkboxes. PregnancyLactation is
// only surfaced for Female patients but is stored as submitted; it is not
// cleared when the gender changes afterwards.
type MedicalHistory struct {
	Hypertension       bool `json:"medConditionHypertension"`
	Diabetes           bool `json:"medConditionDiabetes"`
	StomachUlcer       bool `json:"medConditionStomachUlcer"`
	RheumaticFever     bool `json:"medConditionRheumaticFever"`
	Hepatitis          bool `json:"medConditionHepatitis"`
	PregnancyLactation bool `json:"medConditionPregnancyLactation"`

	AntibioticAllergy      bool `json:"hasAntibioticAllergy"`
	LocalAnesthesiaAllergy bool `json:"hasLocalAnesthesiaAllergy"`
	HeartProblems          bool `json:"hasHeartProblems"`
	KidneyProblems         bool `json:"hasKidneyProblems"`
	LiverProblems          bool `json:"hasLiverProblems"`

	TakesRegularMedication bool   `json:"takesRegularMedication"`
	MedicationPressure     bool   `json:"medicationPressure"`
	MedicationDiabetes     bool   `json:"medicationDiabetes"`
	MedicationBloodThinner bool   `json:"medicationBloodThinner"`
	MedicationOther        string `json:"medicationOther"`
}

func (m MedicalHistory) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MedicalHistory) Scan(src interface{}) error {
	if src == nil {
		*m = MedicalHistory{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported medical_history column type %T", src)
	}
	if len(data) == 0 {
		*m = MedicalHistory{}
		return nil
	}
	return json.Unmarshal(data, m)
}

type Patient struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	Phone      string         `db:"phone" json:"phone"`
	DOB        string         `db:"dob" json:"dob"`
	Email      string         `db:"email" json:"email"`
	Occupation string         `db:"occupation" json:"occupation"`
	Address    string         `db:"address" json:"address"`
	Gender     Gender         `db:"gender" json:"gender"`
	History    MedicalHistory `db:"medical_history" json:"medicalHistory"`
	Chart      Chart          `db:"chart" json:"chart"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
}

// CreatePatientRequest is the intake form. Name and phone are the only
// required fields; everything else defaults to empty/false.
type CreatePatientRequest struct {
	Name       string         `json:"name" binding:"required"`
	Phone      string         `json:"phone" binding:"required"`
	DOB        string         `json:"dob"`
	Email      string         `json:"email" binding:"omitempty,email"`
	Occupation string         `json:"occupation"`
	Address    string         `json:"address"`
	Gender     Gender         `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	History    MedicalHistory `json:"medicalHistory"`
}

// UpdatePatientRequest replaces the demographic fields wholesale. The chart
// is optional: when omitted the stored chart is carried over untouched.
type UpdatePatientRequest struct {
	Name       string         `json:"name" binding:"required"`
	Phone      string         `json:"phone" binding:"required"`
	DOB        string         `json:"dob"`
	Email      string         `json:"email" binding:"omitempty,email"`
	Occupation string         `json:"occupation"`
	Address    string         `json:"address"`
	Gender     Gender         `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	History    MedicalHistory `json:"medicalHistory"`
	Chart      Chart          `json:"chart,omitempty"`
}

// AppendToothEventRequest records one treatment on a tooth.
type AppendToothEventRequest struct {
	Status ToothStatus `json:"status" binding:"required,oneof=Healthy Decay Filled Missing Crowned Bridge Implant"`
	Note   string      `json:"note" binding:"max=2000"`
}
