package service

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

var (
	priceFourHour  = decimal.NewFromInt(400)
	priceHalfMonth = decimal.NewFromInt(300)
	priceOneMonth  = decimal.NewFromInt(600)
)

// PriceFor returns the per-seat price of a booking.  The 4-hour price is
// flat regardless of the period.
func PriceFor(d model.DurationType, p model.SubscriptionPeriod) (decimal.Decimal, error) {
	switch {
	case d == model.FourHour:
		return priceFourHour, nil
	case d == model.FullTime && p == model.HalfMonth:
		return priceHalfMonth, nil
	case d == model.FullTime && p == model.OneMonth:
		return priceOneMonth, nil
	}
	return decimal.Zero, invalid("duration_type", "no price for "+string(d)+"/"+string(p))
}

// TotalFor returns the price of seats seats.  A 4-hour booking always
// counts as one seat.
func TotalFor(d model.DurationType, p model.SubscriptionPeriod, seats int) (decimal.Decimal, error) {
	unit, err := PriceFor(d, p)
	if err != nil {
		return decimal.Zero, err
	}
	if d == model.FourHour || seats < 1 {
		seats = 1
	}
	return unit.Mul(decimal.NewFromInt(int64(seats))), nil
}
