package domain

import "time"

// Date is a calendar day in UTC. The zero value means "not set".
type Date struct{ time.Time }

const DateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t.UTC()}, nil
}

func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return &time.ParseError{Layout: DateLayout, Value: s}
	}
	p, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// Draft is the in-progress booking form. Never persisted.
type Draft struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CheckIn         Date   `json:"checkIn"`
	CheckOut        Date   `json:"checkOut"`
	Guests          int    `json:"guests"`
	RoomID          string `json:"roomId"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseConfirmed  Phase = "confirmed"
)

type Confirmation struct {
	SubmissionID string    `json:"submissionId"`
	RoomID       string    `json:"roomId"`
	RoomName     string    `json:"roomName"`
	HotelName    string    `json:"hotelName,omitempty"`
	Guests       int       `json:"guests"`
	CheckIn      Date      `json:"checkIn"`
	CheckOut     Date      `json:"checkOut"`
	Nights       int       `json:"nights"`
	Total        float64   `json:"total"`
	Email        string    `json:"email"`
	ConfirmedAt  time.Time `json:"confirmedAt"`
}

// Submission is the stored state of one booking flow.
type Submission struct {
	ID           string        `json:"id"`
	Phase        Phase         `json:"phase"`
	Draft        Draft         `json:"draft"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingRecord is a row of the admin bookings ledger.
type BookingRecord struct {
	ID         string        `json:"id"`
	GuestName  string        `json:"guestName"`
	RoomName   string        `json:"roomName"`
	CheckIn    Date          `json:"checkIn"`
	CheckOut   Date          `json:"checkOut"`
	Status     BookingStatus `json:"status"`
	Guests     int           `json:"guests"`
	TotalPrice float64       `json:"totalPrice"`
}
