package dto

import "time"

type AppointmentListDTO struct {
	ID          uint       `json:"id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Status      string     `json:"status"`
	Purpose     string     `json:"purpose"`
	PatientName string     `json:"patient_name"`
	DentistName string     `json:"dentist_name"`
	Treatments  []string   `json:"treatments"`
}
