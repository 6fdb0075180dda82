package booking

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound  = errors.New("booking record not found")
	ErrNotPending      = errors.New("booking record is not pending")
	ErrNoPendingCancel = errors.New("no cancellation awaiting confirmation")
)

// Status is the lifecycle state of a booking record.
type Status string

const (
	Completed Status = "completed"
	Pending   Status = "pending"
	Expired   Status = "expired"
	Verified  Status = "verified"
)

// Label returns the text shown on the record's status badge.
func (s Status) Label() string {
	switch s {
	case Completed, Verified:
		return "已核销"
	case Pending:
		return "待核销"
	case Expired:
		return "已逾期"
	default:
		return string(s)
	}
}

// Record is one booking in the records list.
type Record struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status Status `json:"status"`
}

// Actionable reports whether the record offers QR display and cancellation.
func (r Record) Actionable() bool {
	return r.Status == Pending
}

// SeedRecords returns the records listed for a new session.
func SeedRecords() []Record {
	return []Record{
		{ID: 1, Name: "张三", Date: "2024年1月15日", Time: "上午 09:00-11:00", Status: Completed},
		{ID: 2, Name: "李四", Date: "2024年1月20日", Time: "下午 14:00-16:00", Status: Pending},
		{ID: 3, Name: "王五", Date: "2024年1月18日", Time: "上午 10:00-12:00", Status: Pending},
		{ID: 4, Name: "赵六", Date: "2024年1月10日", Time: "下午 15:00-17:00", Status: Expired},
		{ID: 5, Name: "钱七", Date: "2024年1月12日", Time: "上午 09:30-11:30", Status: Verified},
	}
}

// RecordStore is the booking records list. It is not safe for concurrent use.
type RecordStore struct {
	records    []Record
	nextID     int
	showing    int
	cancelling int
}

// NewRecordStore creates a store holding a copy of seed.
func NewRecordStore(seed []Record) *RecordStore {
	s := &RecordStore{records: make([]Record, len(seed)), nextID: 1}
	copy(s.records, seed)
	for _, r := range seed {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	return s
}

// List returns a copy of the records in display order.
func (s *RecordStore) List() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// Get returns the record with the given id.
func (s *RecordStore) Get(id int) (Record, error) {
	i, err := s.index(id)
	if err != nil {
		return Record{}, err
	}
	return s.records[i], nil
}

// AddPending appends a pending record at the top of the list.
func (s *RecordStore) AddPending(name, date, time string) Record {
	r := Record{ID: s.nextID, Name: name, Date: date, Time: time, Status: Pending}
	s.nextID++
	s.records = append([]Record{r}, s.records...)
	return r
}

// ShowQRCode opens the QR display for a pending record.
func (s *RecordStore) ShowQRCode(id int) (Record, error) {
	r, err := s.pending(id)
	if err != nil {
		return Record{}, err
	}
	s.showing = id
	return r, nil
}

// QRCodeShown returns the record whose QR code is displayed, if any.
func (s *RecordStore) QRCodeShown() (Record, bool) {
	if s.showing == 0 {
		return Record{}, false
	}
	r, err := s.Get(s.showing)
	if err != nil {
		return Record{}, false
	}
	return r, true
}

// CloseQRCode closes the QR display.
func (s *RecordStore) CloseQRCode() {
	s.showing = 0
}

// RequestCancel asks for confirmation before cancelling a pending record.
func (s *RecordStore) RequestCancel(id int) error {
	if _, err := s.pending(id); err != nil {
		return err
	}
	s.cancelling = id
	return nil
}

// PendingCancel returns the id awaiting confirmation, if any.
func (s *RecordStore) PendingCancel() (int, bool) {
	return s.cancelling, s.cancelling != 0
}

// ConfirmCancel removes the record marked by RequestCancel.
func (s *RecordStore) ConfirmCancel() (Record, error) {
	if s.cancelling == 0 {
		return Record{}, ErrNoPendingCancel
	}
	id := s.cancelling
	s.cancelling = 0

	i, err := s.index(id)
	if err != nil {
		return Record{}, err
	}
	r := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	if s.showing == id {
		s.showing = 0
	}
	return r, nil
}

// DismissCancel drops the pending cancellation.
func (s *RecordStore) DismissCancel() {
	s.cancelling = 0
}

// Reset closes any open dialog.
func (s *RecordStore) Reset() {
	s.showing = 0
	s.cancelling = 0
}

func (s *RecordStore) pending(id int) (Record, error) {
	r, err := s.Get(id)
	if err != nil {
		return Record{}, err
	}
	if !r.Actionable() {
		return Record{}, fmt.Errorf("%w: %d is %s", ErrNotPending, id, r.Status)
	}
	return r, nil
}

func (s *RecordStore) index(id int) (int, error) {
	for i, r := range s.records {
		if r.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrRecordNotFound, id)
}
