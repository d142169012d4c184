package appointment

import (
	"context"
	"time"

	"github.com/michaelgigihub/dental-clinic-api/internal/clinictime"
	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/dto"
)

type ListAppointmentsByMonth struct {
	repo scheduling.Repository
}

func NewListAppointmentsByMonth(
	repo scheduling.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	dentistID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, clinictime.Location())
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListForPeriod(ctx, dentistID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
