package usecase

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/apperror"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
)

// maxTripHeadcount caps tour requests and custom bookings. Package and
// request-based bookings only require at least one traveller.
const maxTripHeadcount = 50

// maxMoneyAmount is the largest value a NUMERIC(12,2) column holds.
const maxMoneyAmount = 9_999_999_999.99

var maxMoneyMessage = fmt.Sprintf("Maximum value is %.2f", maxMoneyAmount)

// tripInput is the normalized form shared by every create payload.
type tripInput struct {
	StartDate      time.Time
	EndDate        time.Time
	NumberOfPeople int
	Budget         *float64
}

type bookingInput struct {
	tripInput
	PackageID           *uuid.UUID
	CustomTourRequestID *uuid.UUID
	PricePerPerson      *float64
	TotalAmount         *float64
}

// requestValidator checks create payloads without touching storage. Every
// violation is collected and reported in payload declaration order.
type requestValidator struct {
	clock utils.Clock
	loc   *time.Location
}

func (v requestValidator) booking(req *request.CreateBookingRequest) (*bookingInput, error) {
	req.Trim()
	c := newViolations(req)
	c.addAll(utils.ValidateStruct(req))

	in := &bookingInput{}
	in.StartDate, in.EndDate = v.dates(c, req.StartDate, req.EndDate)
	in.NumberOfPeople = headcount(c, req.NumberOfPeople, 0)
	in.PricePerPerson = money(c, "price_per_person", req.PricePerPerson)
	in.TotalAmount = money(c, "total_amount", req.TotalAmount)
	in.PackageID = optionalUUID(c, "package_id", req.PackageID)
	in.CustomTourRequestID = optionalUUID(c, "custom_tour_request_id", req.CustomTourRequestID)

	if err := c.err(); err != nil {
		return nil, err
	}
	return in, nil
}

func (v requestValidator) tourRequest(req *request.CreateTourRequestRequest) (*tripInput, error) {
	req.Trim()
	c := newViolations(req)
	c.addAll(utils.ValidateStruct(req))

	in := &tripInput{}
	in.StartDate, in.EndDate = v.dates(c, req.StartDate, req.EndDate)
	in.NumberOfPeople = headcount(c, req.NumberOfPeople, maxTripHeadcount)
	in.Budget = money(c, "budget", req.Budget)

	if err := c.err(); err != nil {
		return nil, err
	}
	return in, nil
}

func (v requestValidator) customBooking(req *request.CreateCustomBookingRequest) (*tripInput, error) {
	req.Trim()
	c := newViolations(req)
	c.addAll(utils.ValidateStruct(req))

	in := &tripInput{}
	in.StartDate, in.EndDate = v.dates(c, req.StartDate, req.EndDate)
	in.NumberOfPeople = headcount(c, req.NumberOfPeople, maxTripHeadcount)
	in.Budget = money(c, "budget", req.Budget)

	if err := c.err(); err != nil {
		return nil, err
	}
	return in, nil
}

// dates enforces start >= today (in the configured zone) and end > start.
// Blank values were already reported by the required tag.
func (v requestValidator) dates(c *violations, rawStart, rawEnd string) (time.Time, time.Time) {
	var start, end time.Time
	var startOK, endOK bool

	if rawStart != "" {
		t, err := utils.ParseDate(rawStart, v.loc)
		if err != nil {
			c.add("start_date", "date", "Must be a date in YYYY-MM-DD format")
		} else {
			start, startOK = t, true
			today := utils.StartOfDay(v.clock.Now().In(v.loc))
			if start.Before(today) {
				c.add("start_date", "future_date", "Start date cannot be in the past")
			}
		}
	}

	if rawEnd != "" {
		t, err := utils.ParseDate(rawEnd, v.loc)
		if err != nil {
			c.add("end_date", "date", "Must be a date in YYYY-MM-DD format")
		} else {
			end, endOK = t, true
		}
	}

	if startOK && endOK && !end.After(start) {
		c.add("end_date", "gtfield", "End date must be after start date")
	}

	return start, end
}

// headcount requires a whole number >= 1, and <= limit when limit > 0.
func headcount(c *violations, n request.Number, limit int) int {
	const field = "number_of_people"
	if !n.IsSet() {
		c.add(field, "required", "This field is required")
		return 0
	}
	f, ok := n.Float()
	if !ok {
		c.add(field, "numeric", "Must be a number")
		return 0
	}
	if f != math.Trunc(f) {
		c.add(field, "integer", "Must be a whole number")
		return 0
	}
	if f < 1 {
		c.add(field, "min", "Minimum value is 1")
		return 0
	}
	if f > math.MaxInt32 {
		c.add(field, "max", fmt.Sprintf("Maximum value is %d", math.MaxInt32))
		return 0
	}
	count := int(f)
	if limit > 0 && count > limit {
		c.add(field, "max", fmt.Sprintf("Maximum value is %d", limit))
	}
	return count
}

// money accepts an optional amount between 0 and maxMoneyAmount after rounding to cents.
func money(c *violations, field string, n request.Number) *float64 {
	if !n.IsSet() {
		return nil
	}
	f, ok := n.Float()
	if !ok {
		c.add(field, "numeric", "Must be a number")
		return nil
	}
	if f < 0 {
		c.add(field, "min", "Minimum value is 0")
		return nil
	}
	if exceedsMoneyLimit(f) {
		c.add(field, "max", maxMoneyMessage)
		return nil
	}
	return &f
}

func exceedsMoneyLimit(amount float64) bool {
	return roundMoney(amount) > maxMoneyAmount
}

// checkBookingTotal rejects a derived total the store could not hold.
func checkBookingTotal(booking *entity.Booking) error {
	if exceedsMoneyLimit(booking.TotalAmount) {
		return apperror.InvalidField("total_amount", "max", maxMoneyMessage)
	}
	return nil
}

func optionalUUID(c *violations, field, raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.add(field, "uuid", "Must be a valid UUID")
		return nil
	}
	return &id
}

// violations collects field errors and orders them by the json field order of
// the payload struct.
type violations struct {
	order  map[string]int
	fields []apperror.FieldViolation
}

func newViolations(payload any) *violations {
	return &violations{order: jsonFieldOrder(payload)}
}

func (c *violations) add(field, rule, message string) {
	c.fields = append(c.fields, apperror.FieldViolation{Field: field, Rule: rule, Message: message})
}

func (c *violations) addAll(fields []apperror.FieldViolation) {
	c.fields = append(c.fields, fields...)
}

func (c *violations) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	sort.SliceStable(c.fields, func(i, j int) bool {
		return c.rank(c.fields[i].Field) < c.rank(c.fields[j].Field)
	})
	return apperror.Validation(c.fields)
}

func (c *violations) rank(field string) int {
	if i, ok := c.order[field]; ok {
		return i
	}
	return len(c.order)
}

func jsonFieldOrder(payload any) map[string]int {
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	order := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			order[name] = i
		}
	}
	return order
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
